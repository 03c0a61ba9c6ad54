// Package commands contains business operations that modify system state.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"storefront/internal/core/ports"
)

// Clock returns the current time. Handlers take one so tests can pin time.
type Clock func() time.Time

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	CounterRepoFactory interface {
		CounterRepository() ports.CounterRepository
	}

	// CounterUoW backs standalone sequence allocation.
	CounterUoW interface {
		TxManager
		CounterRepoFactory
	}

	CounterUoWFactory interface {
		Create() CounterUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW coordinates orders with the riders assigned to them.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		RiderRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// CheckoutUoW spans everything order creation reads and writes: the
	// customer, their address book, the daily counter and the new order.
	CheckoutUoW interface {
		TxManager
		UserRepoFactory
		AddressRepoFactory
		CounterRepoFactory
		OrderRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// IdentityUoW serialises user creation through the users counter.
	IdentityUoW interface {
		TxManager
		UserRepoFactory
		CounterRepoFactory
	}

	IdentityUoWFactory interface {
		Create() IdentityUoW
	}

	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	RiderUoWFactory interface {
		Create() RiderUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// AddressBookUoW keeps a user's addresses and default-address reference in step.
	AddressBookUoW interface {
		TxManager
		UserRepoFactory
		AddressRepoFactory
	}

	AddressBookUoWFactory interface {
		Create() AddressBookUoW
	}
)
