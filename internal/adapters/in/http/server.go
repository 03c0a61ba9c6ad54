// Package http is the inbound REST adapter. It authenticates requests,
// validates them against the embedded OpenAPI document, builds commands and
// queries, and maps domain errors onto status codes.
package http

import (
	"context"
	"log/slog"

	"storefront/internal/adapters/out/identity"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/domain/model/user"
)

// Use case contracts, satisfied by the handlers in the commands and queries
// packages.
type (
	ExchangeCredentialHandler interface {
		Handle(ctx context.Context, cmd commands.ExchangeCredentialCommand) (commands.ExchangeResult, error)
	}

	RiderLoginHandler interface {
		Handle(ctx context.Context, cmd commands.RiderLoginCommand) (commands.RiderLoginResult, error)
	}

	CreateRiderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateRiderCommand) (*rider.Rider, error)
	}

	UpdateProfileHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateProfileCommand) (*user.User, error)
	}

	ChangeUserRoleHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeUserRoleCommand) (*user.User, error)
	}

	AddressBookHandler interface {
		HandleAdd(ctx context.Context, cmd commands.AddAddressCommand) (*address.Address, error)
		HandleSetDefault(ctx context.Context, cmd commands.SetDefaultAddressCommand) error
		HandleRemove(ctx context.Context, cmd commands.RemoveAddressCommand) error
	}

	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}

	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}

	AssignRiderHandler interface {
		Handle(ctx context.Context, cmd commands.AssignRiderCommand) (*order.Order, error)
	}

	PickupOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PickupOrderCommand) (*order.Order, error)
	}

	DeliverOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeliverOrderCommand) (*order.Order, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}

	ListRidersHandler interface {
		Handle(ctx context.Context, query queries.ListRidersQuery) ([]queries.RiderView, error)
	}

	ListAddressesHandler interface {
		Handle(ctx context.Context, query queries.ListAddressesQuery) ([]queries.AddressView, error)
	}

	// SessionParser turns a bearer token into a verified session.
	SessionParser interface {
		ParseSession(raw string) (identity.Session, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	ExchangeCredential ExchangeCredentialHandler
	RiderLogin         RiderLoginHandler
	CreateRider        CreateRiderHandler
	UpdateProfile      UpdateProfileHandler
	ChangeUserRole     ChangeUserRoleHandler
	AddressBook        AddressBookHandler
	CreateOrder        CreateOrderHandler
	ChangeOrderStatus  ChangeOrderStatusHandler
	AssignRider        AssignRiderHandler
	PickupOrder        PickupOrderHandler
	DeliverOrder       DeliverOrderHandler
	GetOrder           GetOrderHandler
	ListOrders         ListOrdersHandler
	ListRiders         ListRidersHandler
	ListAddresses      ListAddressesHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers      Handlers
	sessions      SessionParser
	retryAttempts int
	logger        *slog.Logger
}

// NewServer creates a server. retryAttempts bounds how often a command that
// lost an optimistic-concurrency race is run again.
func NewServer(handlers Handlers, sessions SessionParser, retryAttempts int, logger *slog.Logger) *Server {
	return &Server{
		handlers:      handlers,
		sessions:      sessions,
		retryAttempts: retryAttempts,
		logger:        logger.With("component", "http"),
	}
}
