package middleware

import (
	"github.com/evandrarf/codetutor/internal/delivery/http/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	SessionCookieName = "codetutor_session"
	sessionLocalKey   = "tutor_session"
)

// SessionMiddleware attaches the caller's TutorSession, issuing a cookie for new browsers.
func (m *Middleware) SessionMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		cookie := utils.CopyString(ctx.Cookies(SessionCookieName))
		id, session := m.Sessions.FindOrCreate(cookie)
		if id != cookie {
			ctx.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
			if m.Log != nil {
				m.Log.WithField("session_id", id).Debug("session cookie issued")
			}
		}

		ctx.Locals(sessionLocalKey, session)
		return ctx.Next()
	}
}

// LookupSessionMiddleware attaches the caller's TutorSession when the cookie
// names a live one. It never creates a session or issues a cookie.
func (m *Middleware) LookupSessionMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if session, ok := m.Sessions.Find(utils.CopyString(ctx.Cookies(SessionCookieName))); ok {
			ctx.Locals(sessionLocalKey, session)
		}
		return ctx.Next()
	}
}

// TutorSession returns the session attached by either middleware, or nil.
func TutorSession(ctx *fiber.Ctx) *usecase.TutorSession {
	session, _ := ctx.Locals(sessionLocalKey).(*usecase.TutorSession)
	return session
}
