package handler

import (
	"errors"

	"github.com/evandrarf/codetutor/internal/delivery/http/domain"
	"github.com/evandrarf/codetutor/internal/delivery/http/entity"
	"github.com/evandrarf/codetutor/internal/delivery/http/middleware"
	"github.com/evandrarf/codetutor/internal/delivery/http/usecase"
	"github.com/evandrarf/codetutor/internal/delivery/http/view"
	"github.com/evandrarf/codetutor/internal/pkg/response"
	"github.com/evandrarf/codetutor/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	CodeAnalysisHandler interface {
		Analyze(ctx *fiber.Ctx) error
		Session(ctx *fiber.Ctx) error
	}

	codeAnalysisHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.CodeAnalysisUsecase
	}
)

func NewCodeAnalysisHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.CodeAnalysisUsecase) CodeAnalysisHandler {
	return &codeAnalysisHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /api/analyze
func (h *codeAnalysisHandler) Analyze(ctx *fiber.Ctx) error {
	var req entity.AnalyzeRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.CODE_ANALYSIS_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.Analyze(ctx.UserContext(), req.Code)
	if err != nil {
		return response.NewFailed(domain.CODE_ANALYSIS_FAILED, analysisFailure(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.CODE_ANALYSIS_SUCCESS, result, nil).Send(ctx)
}

// GET /api/session
func (h *codeAnalysisHandler) Session(ctx *fiber.Ctx) error {
	var status entity.SessionStatus
	if session := middleware.TutorSession(ctx); session != nil {
		status = view.NewStatus(session.Snapshot(), elapsedSince(session.AnalysisStartedAt()))
	} else {
		status = view.NewStatus(entity.SessionState{}, 0)
	}
	return response.NewSuccess(domain.TUTOR_SESSION_GET_SUCCESS, status, nil).Send(ctx)
}

// analysisFailure turns an AnalysisError into a fiber error carrying the user
// message. Upstream model failures answer 502, blank input 400.
func analysisFailure(err error) error {
	var analysisErr *usecase.AnalysisError
	if !errors.As(err, &analysisErr) {
		return err
	}

	status := fiber.StatusBadGateway
	if analysisErr.Kind == usecase.KindEmptyInput {
		status = fiber.StatusBadRequest
	}
	return fiber.NewError(status, usecase.UserMessage(analysisErr))
}
