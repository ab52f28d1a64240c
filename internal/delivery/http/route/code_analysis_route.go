package route

import (
	"github.com/evandrarf/codetutor/internal/delivery/http/handler"
	"github.com/evandrarf/codetutor/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupCodeAnalysisRoute(api *fiber.App, page handler.PageHandler, analysis handler.CodeAnalysisHandler, m *middleware.Middleware) {
	// Only state-changing posts create sessions.
	session := m.SessionMiddleware()
	lookup := m.LookupSessionMiddleware()

	api.Get("/", lookup, page.Index)
	api.Post("/analyze", session, page.Analyze)
	api.Post("/upload", session, page.Upload)
	api.Post("/clear", lookup, page.Clear)
	api.Post("/reset", lookup, page.Reset)

	apiRouter := api.Group("/api")
	{
		apiRouter.Post("/analyze", analysis.Analyze)
		apiRouter.Get("/session", lookup, analysis.Session)
	}
}
