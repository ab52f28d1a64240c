package middleware

import (
	"github.com/evandrarf/codetutor/internal/delivery/http/repository"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type MiddlewareConfig struct {
	Log      *logrus.Logger
	Config   *viper.Viper
	Sessions repository.SessionRepository
}

// Middleware groups the HTTP middleware constructors. Config may be nil, in
// which case defaults apply.
type Middleware struct {
	Log      *logrus.Logger
	Config   *viper.Viper
	Sessions repository.SessionRepository
}

func NewMiddleware(c *MiddlewareConfig) *Middleware {
	if c == nil {
		return &Middleware{}
	}

	return &Middleware{
		Log:      c.Log,
		Config:   c.Config,
		Sessions: c.Sessions,
	}
}
