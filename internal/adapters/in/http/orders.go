package http

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CreateOrder handles POST /orders - places an order for the caller, or for
// userId when a shopkeeper or admin places it on a customer's behalf.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrder
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	actor := actorFrom(ctx)
	userID := request.UserID
	if userID == "" {
		userID = actor.ID
	}

	method, err := order.ParseDeliveryMethod(request.Method)
	if err != nil {
		return s.fail(ctx, err, "failed to create order")
	}

	addressID, err := optionalUUID("addressId", request.AddressID)
	if err != nil {
		return s.fail(ctx, err, "failed to create order")
	}

	lines := make([]commands.OrderLine, len(request.Items))
	for i, item := range request.Items {
		lines[i] = commands.OrderLine{
			ProductID:       item.ProductID,
			Name:            item.Name,
			UnitPrice:       item.UnitPrice,
			DiscountedPrice: item.DiscountedPrice,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(actor, userID, lines, method, addressID)
	if err != nil {
		return s.fail(ctx, err, "failed to create order")
	}

	var result commands.CreateOrderResult
	err = s.withRetry(ctx, func(c context.Context) error {
		var handleErr error
		result, handleErr = s.handlers.CreateOrder.Handle(c, cmd)
		return handleErr
	})
	if err != nil {
		return s.fail(ctx, err, "failed to create order")
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: result.OrderID.String(), Number: result.Number})
}

// GetOrders handles GET /orders - lists orders visible to the caller.
func (s *Server) GetOrders(ctx echo.Context) error {
	params := ctx.QueryParams()

	var (
		statuses []string
		userID   string
		riderID  string
		limit    int
	)
	if err := errors.Join(
		runtime.BindQueryParameter("form", true, false, "status", params, &statuses),
		runtime.BindQueryParameter("form", true, false, "userId", params, &userID),
		runtime.BindQueryParameter("form", true, false, "riderId", params, &riderID),
		runtime.BindQueryParameter("form", true, false, "limit", params, &limit),
	); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("query", err), "failed to retrieve orders")
	}

	filter := queries.OrderFilter{UserID: userID, Limit: limit}
	for _, name := range statuses {
		status, err := order.ParseStatus(name)
		if err != nil {
			return s.fail(ctx, err, "failed to retrieve orders")
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	rider, err := optionalUUID("riderId", &riderID)
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve orders")
	}
	filter.RiderID = rider

	query, err := queries.NewListOrdersQuery(actorFrom(ctx), filter)
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve orders")
	}

	views, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve orders")
	}

	response := make([]Order, len(views))
	for i, view := range views {
		response[i] = orderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve order")
	}

	query, err := queries.NewGetOrderQuery(actorFrom(ctx), orderID)
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve order")
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// TransitionOrder handles POST /orders/:id/transitions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err, "failed to change order status")
	}

	var request Transition
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	to, err := order.ParseStatus(request.To)
	if err != nil {
		return s.fail(ctx, err, "failed to change order status")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actorFrom(ctx), orderID, to, request.Reason)
	if err != nil {
		return s.fail(ctx, err, "failed to change order status")
	}

	return s.respondWithOrder(ctx, "failed to change order status", func(c context.Context) (*order.Order, error) {
		return s.handlers.ChangeOrderStatus.Handle(c, cmd)
	})
}

// AssignRider handles POST /orders/:id/rider.
func (s *Server) AssignRider(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err, "failed to assign rider")
	}

	var request RiderAssignment
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
	}

	riderID, err := optionalUUID("riderId", &request.RiderID)
	if err != nil {
		return s.fail(ctx, err, "failed to assign rider")
	}
	if riderID == nil {
		return s.fail(ctx, errs.NewValueIsRequiredError("riderId"), "failed to assign rider")
	}

	cmd, err := commands.NewAssignRiderCommand(actorFrom(ctx), orderID, *riderID)
	if err != nil {
		return s.fail(ctx, err, "failed to assign rider")
	}

	return s.respondWithOrder(ctx, "failed to assign rider", func(c context.Context) (*order.Order, error) {
		return s.handlers.AssignRider.Handle(c, cmd)
	})
}

// PickupOrder handles POST /orders/:id/pickup - the assigned rider collects the order.
func (s *Server) PickupOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err, "failed to pick up order")
	}

	riderID, err := riderOf(actorFrom(ctx), "pick up orders")
	if err != nil {
		return s.fail(ctx, err, "failed to pick up order")
	}

	cmd, err := commands.NewPickupOrderCommand(riderID, orderID)
	if err != nil {
		return s.fail(ctx, err, "failed to pick up order")
	}

	return s.respondWithOrder(ctx, "failed to pick up order", func(c context.Context) (*order.Order, error) {
		return s.handlers.PickupOrder.Handle(c, cmd)
	})
}

// DeliverOrder handles POST /orders/:id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err, "failed to deliver order")
	}

	riderID, err := riderOf(actorFrom(ctx), "deliver orders")
	if err != nil {
		return s.fail(ctx, err, "failed to deliver order")
	}

	cmd, err := commands.NewDeliverOrderCommand(riderID, orderID)
	if err != nil {
		return s.fail(ctx, err, "failed to deliver order")
	}

	return s.respondWithOrder(ctx, "failed to deliver order", func(c context.Context) (*order.Order, error) {
		return s.handlers.DeliverOrder.Handle(c, cmd)
	})
}

func (s *Server) respondWithOrder(ctx echo.Context, failure string, handle func(context.Context) (*order.Order, error)) error {
	var updated *order.Order
	err := s.withRetry(ctx, func(c context.Context) error {
		var handleErr error
		updated, handleErr = handle(c)
		return handleErr
	})
	if err != nil {
		return s.fail(ctx, err, failure)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}
