package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgresadapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2025, time.June, 1, 6, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.OrderStatusChanged
	err    error
}

func (p *recordingPublisher) PublishStatusChanged(_ context.Context, event ports.OrderStatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []ports.OrderStatusChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.OrderStatusChanged(nil), p.events...)
}

// UnitOfWorkIntegrationTestSuite runs the storage adapters against a real
// PostgreSQL with the production schema.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	publisher *recordingPublisher
	factory   *postgresadapter.GormUnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.publisher = &recordingPublisher{}
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(suite.database.DB, suite.publisher, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) phone(raw string) kernel.Phone {
	p, err := kernel.NewPhone(raw)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) seedUser(id, phone string, at time.Time) *user.User {
	u, err := user.NewUser(id, suite.phone(phone), "Asha", at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().UserRepository().Add(context.Background(), u))
	return u
}

func (suite *UnitOfWorkIntegrationTestSuite) seedRider(name, phone string) *rider.Rider {
	r, err := rider.NewRider(kernel.NewUUID(), name, suite.phone(phone), "secret-1", testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().RiderRepository().Add(context.Background(), r))
	return r
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(number, userID string) *order.Order {
	discounted := kernel.Money(4500)
	milk, err := order.NewItem("milk-1l", "Milk 1L", 5000, &discounted, 2, "pack")
	suite.Require().NoError(err)
	bread, err := order.NewItem("bread", "Bread", 4000, nil, 1, "")
	suite.Require().NoError(err)

	coords, err := kernel.NewCoordinates(12.9716, 77.5946)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, userID, []order.Item{milk, bread}, order.MethodDelivery,
		&order.DeliveryAddress{Label: "Home", FullAddress: "12 MG Road", Coordinates: &coords, Instructions: "ring twice"},
		testNow)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) addOrder(o *order.Order) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Error(uow.Commit(ctx), "commit without a transaction")
	suite.Error(uow.Rollback(ctx), "rollback without a transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_RoundTrip() {
	ctx := context.Background()
	o := suite.newOrder("DKN-001", "user-1")
	suite.addOrder(o)

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal("DKN-001", loaded.Number())
	suite.Equal(kernel.Money(13000), loaded.Total())
	suite.Equal(kernel.Money(1000), loaded.Savings())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(1, loaded.Version())
	suite.Require().Len(loaded.Items(), 2)
	suite.Equal("milk-1l", loaded.Items()[0].ProductID())
	suite.Equal(kernel.Money(4500), *loaded.Items()[0].DiscountedPrice())
	suite.Nil(loaded.Items()[1].DiscountedPrice())
	suite.Require().NotNil(loaded.Address())
	suite.Equal("ring twice", loaded.Address().Instructions)
	suite.InDelta(12.9716, loaded.Address().Coordinates.Latitude(), 1e-9)
	suite.Nil(loaded.Rider())
	suite.True(testNow.Equal(loaded.CreatedAt()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_Get_NotFound() {
	_, err := suite.factory.Create().OrderRepository().Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_Update_DetectsLostUpdate() {
	ctx := context.Background()
	o := suite.newOrder("DKN-002", "user-1")
	suite.addOrder(o)

	staff := kernel.Actor{ID: "shop-1", Role: kernel.RoleShopkeeper}
	first, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ChangeStatus(staff, order.Accepted, "", testNow.Add(time.Minute)))
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, first))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(2, first.Version())

	suite.Require().NoError(second.ChangeStatus(staff, order.Cancelled, "out of stock", testNow.Add(2*time.Minute)))
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err = uow.OrderRepository().Update(ctx, second)
	suite.Require().NoError(uow.Rollback(ctx))

	suite.ErrorIs(err, errs.ErrTransactionConflict)
	suite.True(errs.IsTransient(err))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, stored.Status())
	suite.Equal(2, stored.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_Update_NotFound() {
	ctx := context.Background()
	o := suite.newOrder("DKN-003", "user-1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.OrderRepository().Update(ctx, o)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishesStatusChangesAfterCommit() {
	ctx := context.Background()
	o := suite.newOrder("DKN-004", "user-1")
	suite.addOrder(o)
	r := suite.seedRider("Ravi", "+919800000001")

	staff := kernel.Actor{ID: "shop-1", Role: kernel.RoleShopkeeper}
	suite.Require().NoError(o.ChangeStatus(staff, order.Accepted, "", testNow.Add(time.Minute)))
	_, err := o.AssignRider(staff, r.Snapshot(), testNow.Add(2*time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(o.ChangeStatus(staff, order.OutForDelivery, "", testNow.Add(3*time.Minute)))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Empty(suite.publisher.Events(), "nothing is published before commit")
	suite.Require().NoError(uow.Commit(ctx))

	events := suite.publisher.Events()
	suite.Require().Len(events, 2)
	suite.Equal("pending", events[0].From)
	suite.Equal("accepted", events[0].To)
	suite.Equal("out_for_delivery", events[1].To)
	suite.Equal(r.ID().String(), events[1].RiderID)
	suite.Equal("DKN-004", events[1].OrderNumber)
	suite.Empty(o.Changes())

	var history []struct {
		FromStatus string
		ToStatus   string
		ActorRole  string
	}
	suite.Require().NoError(suite.database.DB.
		Table("order_status_changes").
		Where("order_id = ?", o.ID().Bytes()).
		Order("id").
		Find(&history).Error)
	suite.Require().Len(history, 2)
	suite.Equal("accepted", history[0].ToStatus)
	suite.Equal("shopkeeper", history[1].ActorRole)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackPublishesNothing() {
	ctx := context.Background()
	o := suite.newOrder("DKN-005", "user-1")
	suite.addOrder(o)

	suite.Require().NoError(o.ChangeStatus(kernel.Actor{ID: "user-1", Role: kernel.RoleCustomer}, order.Cancelled, "changed my mind", testNow))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(suite.publisher.Events())

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublisherFailureKeepsCommit() {
	ctx := context.Background()
	suite.publisher.err = errors.New("broker down")
	o := suite.newOrder("DKN-006", "user-1")
	suite.addOrder(o)

	suite.Require().NoError(o.ChangeStatus(kernel.Actor{ID: "admin", Role: kernel.RoleAdmin}, order.Accepted, "", testNow))
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_CountActiveByRider() {
	ctx := context.Background()
	busy := suite.seedRider("Ravi", "+919800000001")
	idle := suite.seedRider("Sunil", "+919800000002")
	staff := kernel.Actor{ID: "shop-1", Role: kernel.RoleShopkeeper}

	for i, number := range []string{"DKN-010", "DKN-011", "DKN-012"} {
		o := suite.newOrder(number, "user-1")
		suite.Require().NoError(o.ChangeStatus(staff, order.Accepted, "", testNow))
		_, err := o.AssignRider(staff, busy.Snapshot(), testNow)
		suite.Require().NoError(err)
		if i == 2 {
			suite.Require().NoError(o.ChangeStatus(staff, order.Cancelled, "customer unreachable", testNow))
		}
		suite.addOrder(o)
	}

	counts, err := suite.factory.Create().OrderRepository().CountActiveByRider(ctx)
	suite.Require().NoError(err)
	suite.Equal(map[kernel.UUID]int{busy.ID(): 2}, counts)
	suite.NotContains(counts, idle.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSequenceAllocator_ConcurrentAllocationsAreGapFree() {
	ctx := context.Background()
	allocator := commands.NewSequenceAllocator("DKN", kernel.NewBusinessClock(kernel.DefaultBusinessOffset))

	const workers = 3
	numbers := make(chan string, workers)
	errCh := make(chan error, workers)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				errCh <- err
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			number, err := allocator.NextOrderNumber(ctx, uow.CounterRepository(), testNow)
			if err != nil {
				errCh <- err
				return
			}
			if err = uow.Commit(ctx); err != nil {
				errCh <- err
				return
			}
			numbers <- number
		}()
	}
	wg.Wait()
	close(numbers)
	close(errCh)

	for err := range errCh {
		suite.Require().NoError(err)
	}

	var got []string
	for n := range numbers {
		got = append(got, n)
	}
	suite.ElementsMatch([]string{"DKN-001", "DKN-002", "DKN-003"}, got)

	var value int64
	suite.Require().NoError(suite.database.DB.
		Table("counters").
		Select("value").
		Where("name = ? AND key = ?", "orders", "20250601").
		Scan(&value).Error)
	suite.Equal(int64(3), value)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSequenceAllocator_RolledBackAllocationIsReused() {
	ctx := context.Background()
	allocator := commands.NewSequenceAllocator("DKN", kernel.NewBusinessClock(kernel.DefaultBusinessOffset))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	number, err := allocator.NextOrderNumber(ctx, uow.CounterRepository(), testNow)
	suite.Require().NoError(err)
	suite.Equal("DKN-001", number)
	suite.Require().NoError(uow.Rollback(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	number, err = allocator.NextOrderNumber(ctx, uow.CounterRepository(), testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal("DKN-001", number)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUserRepository_FindByPhoneReturnsOldest() {
	ctx := context.Background()
	suite.seedUser("auth-B", "+919876543210", testNow.Add(time.Hour))
	suite.seedUser("auth-A", "+919876543210", testNow)

	found, err := suite.factory.Create().UserRepository().FindByPhone(ctx, suite.phone("+91 98765-43210"))
	suite.Require().NoError(err)
	suite.Equal("auth-A", found.ID())

	_, err = suite.factory.Create().UserRepository().FindByPhone(ctx, suite.phone("+919000000000"))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUserRepository_UpdateClearsDefaultAddress() {
	ctx := context.Background()
	u := suite.seedUser("auth-A", "+919876543210", testNow)
	repo := suite.factory.Create().UserRepository()

	a, err := address.NewAddress(kernel.NewUUID(), u.ID(), address.LabelHome, "12 MG Road", nil, "", testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().AddressRepository().Add(ctx, a))

	id := a.ID()
	u.SetDefaultAddress(&id, testNow)
	suite.Require().NoError(u.ChangeRole(kernel.RoleShopkeeper, testNow))
	suite.Require().NoError(repo.Update(ctx, u))

	stored, err := repo.Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.DefaultAddressID())
	suite.Equal(id, *stored.DefaultAddressID())
	suite.Equal(kernel.RoleShopkeeper, stored.Role())

	u.SetDefaultAddress(nil, testNow)
	suite.Require().NoError(repo.Update(ctx, u))

	stored, err = repo.Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.Nil(stored.DefaultAddressID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRiderRepository() {
	ctx := context.Background()
	sunil := suite.seedRider("Sunil", "+919800000002")
	ravi := suite.seedRider("Ravi", "+919800000001")
	repo := suite.factory.Create().RiderRepository()

	all, err := repo.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal(ravi.ID(), all[0].ID())
	suite.Equal(sunil.ID(), all[1].ID())

	byPhone, err := repo.GetByPhone(ctx, suite.phone("+919800000002"))
	suite.Require().NoError(err)
	suite.Equal(sunil.ID(), byPhone.ID())
	suite.NoError(byPhone.CheckPassword("secret-1"))

	byPhone.TakeOrder()
	suite.Require().NoError(repo.Update(ctx, byPhone))
	stored, err := repo.Get(ctx, sunil.ID())
	suite.Require().NoError(err)
	suite.Equal(1, stored.ActiveOrders())
	suite.Equal(1, stored.TotalOrders())

	duplicate, err := rider.NewRider(kernel.NewUUID(), "Other", suite.phone("+919800000001"), "secret-2", testNow)
	suite.Require().NoError(err)
	err = repo.Add(ctx, duplicate)
	suite.ErrorIs(err, errs.ErrTransactionConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAddressRepository() {
	ctx := context.Background()
	u := suite.seedUser("auth-A", "+919876543210", testNow)
	repo := suite.factory.Create().AddressRepository()

	coords, err := kernel.NewCoordinates(19.076, 72.8777)
	suite.Require().NoError(err)
	home, err := address.NewAddress(kernel.NewUUID(), u.ID(), address.LabelHome, "1 Marine Drive", &coords, "gate 2", testNow)
	suite.Require().NoError(err)
	work, err := address.NewAddress(kernel.NewUUID(), u.ID(), address.LabelWork, "5 BKC", nil, "", testNow.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, home))
	suite.Require().NoError(repo.Add(ctx, work))

	stored, err := repo.GetAllByUser(ctx, u.ID())
	suite.Require().NoError(err)
	suite.Require().Len(stored, 2)
	suite.Equal(home.ID(), stored[0].ID())
	suite.Require().NotNil(stored[0].Coordinates())
	suite.Nil(stored[1].Coordinates())

	suite.Require().NoError(repo.Remove(ctx, home.ID()))
	suite.ErrorIs(repo.Remove(ctx, home.ID()), errs.ErrObjectNotFound)

	stored, err = repo.GetAllByUser(ctx, u.ID())
	suite.Require().NoError(err)
	suite.Len(stored, 1)
}
