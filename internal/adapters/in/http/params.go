package http

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/retry"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathString(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, ctx.Param(name), &value)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	raw, err := pathString(ctx, name)
	if err != nil {
		return kernel.UUID{}, err
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func optionalUUID(name string, raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}

// riderOf returns the rider id of actor; other roles are refused.
func riderOf(actor kernel.Actor, action string) (kernel.UUID, error) {
	if actor.Role != kernel.RoleRider {
		return kernel.UUID{}, errs.NewForbiddenError(action, actor.Role.String())
	}
	id, err := kernel.UUIDFromString(actor.ID)
	if err != nil {
		return kernel.UUID{}, errs.NewForbiddenError(action, actor.Role.String())
	}
	return id, nil
}

// withRetry runs op again while it loses optimistic-concurrency races.
func (s *Server) withRetry(ctx echo.Context, op func(ctx context.Context) error) error {
	return retry.OnConflict(ctx.Request().Context(), s.retryAttempts, op)
}
