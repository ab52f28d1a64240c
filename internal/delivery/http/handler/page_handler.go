package handler

import (
	"errors"
	"io"
	"time"

	"github.com/evandrarf/codetutor/internal/delivery/http/entity"
	"github.com/evandrarf/codetutor/internal/delivery/http/middleware"
	"github.com/evandrarf/codetutor/internal/delivery/http/usecase"
	"github.com/evandrarf/codetutor/internal/delivery/http/view"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type (
	PageHandler interface {
		Index(ctx *fiber.Ctx) error
		Analyze(ctx *fiber.Ctx) error
		Upload(ctx *fiber.Ctx) error
		Clear(ctx *fiber.Ctx) error
		Reset(ctx *fiber.Ctx) error
	}

	pageHandler struct {
		logger  *logrus.Logger
		appName string
	}
)

func NewPageHandler(logger *logrus.Logger, appName string) PageHandler {
	if appName == "" {
		appName = "CodeTutor AI"
	}
	return &pageHandler{
		logger:  logger,
		appName: appName,
	}
}

// GET /?tab=explanation|improved
func (h *pageHandler) Index(ctx *fiber.Ctx) error {
	var (
		state   entity.SessionState
		elapsed time.Duration
	)
	if session := middleware.TutorSession(ctx); session != nil {
		state = session.Snapshot()
		elapsed = elapsedSince(session.AnalysisStartedAt())
	}

	page := view.NewPage(h.appName, state, ctx.Query("tab"), elapsed)
	return ctx.Render("index", page, "layouts/main")
}

// POST /analyze
func (h *pageHandler) Analyze(ctx *fiber.Ctx) error {
	session := middleware.TutorSession(ctx)
	if session == nil {
		return fiber.ErrInternalServerError
	}

	session.SetText(utils.CopyString(ctx.FormValue("code")))
	if session.RequestAnalysis(ctx.UserContext()) {
		h.logger.Debug("analysis requested")
	}

	return ctx.Redirect("/", fiber.StatusSeeOther)
}

// POST /upload
func (h *pageHandler) Upload(ctx *fiber.Ctx) error {
	session := middleware.TutorSession(ctx)
	if session == nil {
		return fiber.ErrInternalServerError
	}

	// The input form posts the textarea alongside the file so typed text
	// survives a rejected upload.
	if form, err := ctx.MultipartForm(); err == nil {
		if values, ok := form.Value["code"]; ok && len(values) > 0 {
			session.SetText(utils.CopyString(values[0]))
		}
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		h.logger.WithError(err).Debug("upload without file")
		return ctx.Redirect("/", fiber.StatusSeeOther)
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "uploaded file cannot be opened")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "uploaded file cannot be read")
	}

	if err := session.LoadFile(header.Filename, content); err != nil {
		if !errors.Is(err, usecase.ErrSessionBusy) && !errors.Is(err, usecase.ErrUnsupportedFile) {
			return err
		}
		h.logger.WithError(err).WithField("file", header.Filename).Debug("upload rejected")
	}

	return ctx.Redirect("/", fiber.StatusSeeOther)
}

// POST /clear
func (h *pageHandler) Clear(ctx *fiber.Ctx) error {
	if session := middleware.TutorSession(ctx); session != nil {
		session.Clear()
	}
	return ctx.Redirect("/", fiber.StatusSeeOther)
}

// POST /reset
func (h *pageHandler) Reset(ctx *fiber.Ctx) error {
	if session := middleware.TutorSession(ctx); session != nil {
		session.Reset()
	}
	return ctx.Redirect("/", fiber.StatusSeeOther)
}

func elapsedSince(start time.Time) time.Duration {
	if start.IsZero() {
		return 0
	}
	return time.Since(start)
}
