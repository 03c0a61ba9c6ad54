package http

import (
	"net/http"
	"strings"

	"storefront/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// authenticate requires a bearer session token and stores the caller as a
// kernel.Actor in the request context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return ctx.JSON(http.StatusUnauthorized, Error{Message: "authorization header required (Bearer <token>)"})
		}

		session, err := s.sessions.ParseSession(strings.TrimSpace(token))
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, Error{Message: "invalid or expired session"})
		}

		role, err := kernel.ParseRole(session.Role)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, Error{Message: "invalid or expired session"})
		}

		actor, err := kernel.NewActor(session.Subject, role)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, Error{Message: "invalid or expired session"})
		}

		ctx.Set(actorKey, actor)
		return next(ctx)
	}
}

func actorFrom(ctx echo.Context) kernel.Actor {
	actor, _ := ctx.Get(actorKey).(kernel.Actor)
	return actor
}
