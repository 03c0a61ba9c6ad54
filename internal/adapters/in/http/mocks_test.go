package http_test

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"

	"github.com/stretchr/testify/mock"
)

type MockExchangeHandler struct{ mock.Mock }

func (m *MockExchangeHandler) Handle(ctx context.Context, cmd commands.ExchangeCredentialCommand) (commands.ExchangeResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ExchangeResult), args.Error(1)
}

type MockRiderLoginHandler struct{ mock.Mock }

func (m *MockRiderLoginHandler) Handle(ctx context.Context, cmd commands.RiderLoginCommand) (commands.RiderLoginResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.RiderLoginResult), args.Error(1)
}

type MockCreateRiderHandler struct{ mock.Mock }

func (m *MockCreateRiderHandler) Handle(ctx context.Context, cmd commands.CreateRiderCommand) (*rider.Rider, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

// MockOrderCommandHandler serves every command that answers with the updated order.
type MockOrderCommandHandler[C any] struct{ mock.Mock }

func (m *MockOrderCommandHandler[C]) Handle(ctx context.Context, cmd C) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderView), args.Error(1)
}
