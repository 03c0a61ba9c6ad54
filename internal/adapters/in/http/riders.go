package http

import (
	"context"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/rider"

	"github.com/labstack/echo/v4"
)

// GetRiders handles GET /riders - staff see every rider with their load.
func (s *Server) GetRiders(ctx echo.Context) error {
	query, err := queries.NewListRidersQuery(actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve riders")
	}

	views, err := s.handlers.ListRiders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve riders")
	}

	response := make([]Rider, len(views))
	for i, view := range views {
		response[i] = riderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateRider handles POST /riders - admins register riders.
func (s *Server) CreateRider(ctx echo.Context) error {
	var request NewRider
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	cmd, err := commands.NewCreateRiderCommand(actorFrom(ctx), request.Name, request.Phone, request.Password)
	if err != nil {
		return s.fail(ctx, err, "failed to create rider")
	}

	var created *rider.Rider
	err = s.withRetry(ctx, func(c context.Context) error {
		var handleErr error
		created, handleErr = s.handlers.CreateRider.Handle(c, cmd)
		return handleErr
	})
	if err != nil {
		return s.fail(ctx, err, "failed to create rider")
	}

	return ctx.JSON(http.StatusCreated, riderFromDomain(created))
}
