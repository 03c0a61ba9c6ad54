package http

import (
	"context"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Exchange handles POST /exchange - trades a verified phone credential for a
// session bound to the canonical user of that phone.
func (s *Server) Exchange(ctx echo.Context) error {
	var request ExchangeRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	cmd, err := commands.NewExchangeCredentialCommand(request.Credential, request.DisplayName)
	if err != nil {
		return s.fail(ctx, err, "failed to exchange credential")
	}

	var result commands.ExchangeResult
	err = s.withRetry(ctx, func(c context.Context) error {
		var handleErr error
		result, handleErr = s.handlers.ExchangeCredential.Handle(c, cmd)
		return handleErr
	})
	if err != nil {
		return s.fail(ctx, err, "failed to exchange credential")
	}

	return ctx.JSON(http.StatusOK, ExchangeResponse{
		SessionToken:        result.SessionToken,
		ResolvedDisplayName: result.ResolvedDisplayName,
		UserID:              result.UserID,
		IsNewUser:           result.IsNewUser,
	})
}

// RiderLogin handles POST /riders/login.
func (s *Server) RiderLogin(ctx echo.Context) error {
	var request RiderLoginRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	cmd, err := commands.NewRiderLoginCommand(request.Phone, request.Password)
	if err != nil {
		return s.fail(ctx, err, "failed to log in")
	}

	result, err := s.handlers.RiderLogin.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "failed to log in")
	}

	return ctx.JSON(http.StatusOK, RiderLoginResponse{
		SessionToken: result.SessionToken,
		RiderID:      result.RiderID.String(),
		Name:         result.Name,
	})
}

// UpdateProfile handles PATCH /me.
func (s *Server) UpdateProfile(ctx echo.Context) error {
	var request ProfileUpdate
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	cmd, err := commands.NewUpdateProfileCommand(actorFrom(ctx), request.DisplayName)
	if err != nil {
		return s.fail(ctx, err, "failed to update profile")
	}

	var updated *user.User
	err = s.withRetry(ctx, func(c context.Context) error {
		var handleErr error
		updated, handleErr = s.handlers.UpdateProfile.Handle(c, cmd)
		return handleErr
	})
	if err != nil {
		return s.fail(ctx, err, "failed to update profile")
	}

	return ctx.JSON(http.StatusOK, userFromDomain(updated))
}

// ChangeUserRole handles PUT /users/:id/role.
func (s *Server) ChangeUserRole(ctx echo.Context) error {
	userID, err := pathString(ctx, "id")
	if err != nil {
		return s.fail(ctx, err, "failed to change role")
	}

	var request RoleChange
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	cmd, err := commands.NewChangeUserRoleCommand(actorFrom(ctx), userID, request.Role)
	if err != nil {
		return s.fail(ctx, err, "failed to change role")
	}

	var updated *user.User
	err = s.withRetry(ctx, func(c context.Context) error {
		var handleErr error
		updated, handleErr = s.handlers.ChangeUserRole.Handle(c, cmd)
		return handleErr
	})
	if err != nil {
		return s.fail(ctx, err, "failed to change role")
	}

	return ctx.JSON(http.StatusOK, userFromDomain(updated))
}
