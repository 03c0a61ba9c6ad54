package http

import (
	"context"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetAddresses handles GET /me/addresses.
func (s *Server) GetAddresses(ctx echo.Context) error {
	actor := actorFrom(ctx)

	query, err := queries.NewListAddressesQuery(actor, actor.ID)
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve addresses")
	}

	views, err := s.handlers.ListAddresses.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve addresses")
	}

	response := make([]Address, len(views))
	for i, view := range views {
		response[i] = addressFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddAddress handles POST /me/addresses.
func (s *Server) AddAddress(ctx echo.Context) error {
	var request NewAddress
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	var coords *kernel.Coordinates
	if request.Latitude != nil || request.Longitude != nil {
		if request.Latitude == nil || request.Longitude == nil {
			return ctx.JSON(http.StatusBadRequest, Error{Message: "latitude and longitude must be sent together"})
		}
		c, err := kernel.NewCoordinates(*request.Latitude, *request.Longitude)
		if err != nil {
			return s.fail(ctx, err, "failed to add address")
		}
		coords = &c
	}

	actor := actorFrom(ctx)
	cmd, err := commands.NewAddAddressCommand(
		actor, actor.ID, request.Label, request.FullAddress, coords, request.Instructions, request.MakeDefault,
	)
	if err != nil {
		return s.fail(ctx, err, "failed to add address")
	}

	var added *address.Address
	err = s.withRetry(ctx, func(c context.Context) error {
		var handleErr error
		added, handleErr = s.handlers.AddressBook.HandleAdd(c, cmd)
		return handleErr
	})
	if err != nil {
		return s.fail(ctx, err, "failed to add address")
	}

	return ctx.JSON(http.StatusCreated, addressFromDomain(added))
}

// SetDefaultAddress handles PUT /me/addresses/:id/default.
func (s *Server) SetDefaultAddress(ctx echo.Context) error {
	addressID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err, "failed to set default address")
	}

	actor := actorFrom(ctx)
	cmd, err := commands.NewSetDefaultAddressCommand(actor, actor.ID, addressID)
	if err != nil {
		return s.fail(ctx, err, "failed to set default address")
	}

	err = s.withRetry(ctx, func(c context.Context) error {
		return s.handlers.AddressBook.HandleSetDefault(c, cmd)
	})
	if err != nil {
		return s.fail(ctx, err, "failed to set default address")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveAddress handles DELETE /me/addresses/:id.
func (s *Server) RemoveAddress(ctx echo.Context) error {
	addressID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err, "failed to remove address")
	}

	actor := actorFrom(ctx)
	cmd, err := commands.NewRemoveAddressCommand(actor, actor.ID, addressID)
	if err != nil {
		return s.fail(ctx, err, "failed to remove address")
	}

	err = s.withRetry(ctx, func(c context.Context) error {
		return s.handlers.AddressBook.HandleRemove(c, cmd)
	})
	if err != nil {
		return s.fail(ctx, err, "failed to remove address")
	}

	return ctx.NoContent(http.StatusNoContent)
}
