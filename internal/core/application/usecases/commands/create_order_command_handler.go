package commands

import (
	"context"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// CreateOrderResult identifies the order that was placed.
type CreateOrderResult struct {
	OrderID kernel.UUID
	Number  string
}

// CreateOrderCommandHandler places orders. The order number is allocated in the
// same transaction as the insert: no order is stored without a number and a
// failed insert gives the number back.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	allocator  SequenceAllocator
	clock      Clock
}

func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory, allocator SequenceAllocator, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		clock:      clock,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	actor := cmd.Actor()
	switch {
	case actor.Role == kernel.RoleRider:
		return CreateOrderResult{}, errs.NewForbiddenError("place orders", actor.Role.String())
	case actor.Role == kernel.RoleCustomer && actor.ID != cmd.UserID():
		return CreateOrderResult{}, errs.NewForbiddenError("place orders for other users", actor.Role.String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	var snapshot *order.DeliveryAddress
	if cmd.Method() == order.MethodDelivery {
		snapshot, err = h.deliveryAddress(ctx, uow, cmd)
		if err != nil {
			return CreateOrderResult{}, err
		}
	}

	now := h.clock()
	number, err := h.allocator.NextOrderNumber(ctx, uow.CounterRepository(), now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	created, err := order.NewOrder(kernel.NewUUID(), number, customer.ID(), cmd.Items(), cmd.Method(), snapshot, now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{OrderID: created.ID(), Number: created.Number()}, nil
}

func (h CreateOrderCommandHandler) deliveryAddress(ctx context.Context, uow CheckoutUoW, cmd CreateOrderCommand) (*order.DeliveryAddress, error) {
	stored, err := uow.AddressRepository().GetAllByUser(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	book, err := address.NewBook(cmd.UserID(), stored)
	if err != nil {
		return nil, err
	}

	chosen := book.Default()
	if id := cmd.AddressID(); id != nil {
		if chosen, err = book.Find(*id); err != nil {
			return nil, err
		}
	}
	if chosen == nil {
		return nil, errs.NewValueIsRequiredError("delivery address")
	}

	snapshot := chosen.Snapshot()
	return &snapshot, nil
}
