package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/counter"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveByRider(ctx context.Context) (map[kernel.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetByPhone(ctx context.Context, phone kernel.Phone) (*rider.Rider, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAll(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAllForUpdate(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone kernel.Phone) (*user.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Add(ctx context.Context, a *address.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Update(ctx context.Context, a *address.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddressRepository) GetAllByUser(ctx context.Context, userID string) ([]*address.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*address.Address), args.Error(1)
}

type MockCounterRepository struct{ mock.Mock }

func (m *MockCounterRepository) GetForUpdate(ctx context.Context, name counter.Name, key string) (*counter.Counter, error) {
	args := m.Called(ctx, name, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*counter.Counter), args.Error(1)
}

func (m *MockCounterRepository) Add(ctx context.Context, c *counter.Counter) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCounterRepository) Update(ctx context.Context, c *counter.Counter) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MemoryCounterRepository keeps counters in a map. It does not lock.
type MemoryCounterRepository struct {
	values map[string]int64
}

func NewMemoryCounterRepository() *MemoryCounterRepository {
	return &MemoryCounterRepository{values: map[string]int64{}}
}

func (r *MemoryCounterRepository) GetForUpdate(_ context.Context, name counter.Name, key string) (*counter.Counter, error) {
	v, ok := r.values[string(name)+"/"+key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("counter", key)
	}
	return counter.RestoreCounter(name, key, v)
}

func (r *MemoryCounterRepository) Add(_ context.Context, c *counter.Counter) error {
	k := string(c.Name()) + "/" + c.Key()
	if _, ok := r.values[k]; !ok {
		r.values[k] = c.Value()
	}
	return nil
}

func (r *MemoryCounterRepository) Update(_ context.Context, c *counter.Counter) error {
	r.values[string(c.Name())+"/"+c.Key()] = c.Value()
	return nil
}

// MockUoW mocks the transaction calls and hands out whatever repositories the
// test plugged in.
type MockUoW struct {
	mock.Mock

	Orders    ports.OrderRepository
	Riders    ports.RiderRepository
	Users     ports.UserRepository
	Addresses ports.AddressRepository
	Counters  ports.CounterRepository
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Orders
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	return m.Riders
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Users
}

func (m *MockUoW) AddressRepository() ports.AddressRepository {
	return m.Addresses
}

func (m *MockUoW) CounterRepository() ports.CounterRepository {
	return m.Counters
}

// committingUoW expects Begin, Commit and the deferred Rollback.
func committingUoW(ctx context.Context) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	return uow
}

// abortingUoW expects Begin and the deferred Rollback only.
func abortingUoW(ctx context.Context) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	return uow
}

// uowFactory satisfies every per-handler factory interface by instantiating T
// with that handler's unit of work type.
type uowFactory[T any] struct {
	uow     T
	created int
}

func (f *uowFactory[T]) Create() T {
	f.created++
	return f.uow
}

type MockIdentityVerifier struct{ mock.Mock }

func (m *MockIdentityVerifier) Verify(ctx context.Context, raw string) (ports.VerifiedCredential, error) {
	args := m.Called(ctx, raw)
	return args.Get(0).(ports.VerifiedCredential), args.Error(1)
}

func (m *MockIdentityVerifier) MintSession(ctx context.Context, userID string, claims ports.SessionClaims) (string, error) {
	args := m.Called(ctx, userID, claims)
	return args.String(0), args.Error(1)
}

type MockReconciler struct{ mock.Mock }

func (m *MockReconciler) Reconcile(
	ctx context.Context,
	phone kernel.Phone,
	authID string,
	displayName *string,
) (commands.ReconcileResult, error) {
	args := m.Called(ctx, phone, authID, displayName)
	return args.Get(0).(commands.ReconcileResult), args.Error(1)
}

// MemoryUserRepository stores users in insertion order.
type MemoryUserRepository struct {
	users []*user.User
}

func (r *MemoryUserRepository) Add(_ context.Context, u *user.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, _ *user.User) error {
	return nil
}

func (r *MemoryUserRepository) Get(_ context.Context, id string) (*user.User, error) {
	for _, u := range r.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("user", id)
}

func (r *MemoryUserRepository) FindByPhone(_ context.Context, phone kernel.Phone) (*user.User, error) {
	for _, u := range r.users {
		if u.Phone().IsEqual(phone) {
			return u, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("user", phone.String())
}

func commandsVerified(authID, phone string) ports.VerifiedCredential {
	return ports.VerifiedCredential{ProvisionalAuthID: authID, VerifiedPhone: phone}
}

func portsClaims(role, phone, provider string) ports.SessionClaims {
	return ports.SessionClaims{Role: role, Phone: phone, Provider: provider}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
