package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	postgresadapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/riderrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

type deliveryUoWFactory struct {
	factory *postgresadapter.GormUnitOfWorkFactory
}

func (f deliveryUoWFactory) Create() commands.DeliveryUoW {
	return f.factory.Create()
}

type identityUoWFactory struct {
	factory *postgresadapter.GormUnitOfWorkFactory
}

func (f identityUoWFactory) Create() commands.IdentityUoW {
	return f.factory.Create()
}

// runConcurrently starts every fn at once and collects their errors.
func runConcurrently(fns ...func() error) []error {
	results := make([]error, len(fns))
	start := make(chan struct{})
	var wg sync.WaitGroup

	for i, fn := range fns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = fn()
		}()
	}
	close(start)
	wg.Wait()

	return results
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignRider_ConcurrentAssignmentsKeepRiderCounts() {
	ctx := context.Background()
	r := suite.seedRider("Ravi", "+919800000001")
	staff := kernel.Actor{ID: "shop-1", Role: kernel.RoleShopkeeper}

	handler := commands.NewAssignRiderCommandHandler(
		deliveryUoWFactory{factory: suite.factory}, services.NewDeliveryAssigner(), func() time.Time { return testNow })

	const orders = 4
	assignments := make([]func() error, 0, orders)
	for i := range orders {
		o := suite.newOrder(fmt.Sprintf("DKN-%03d", 20+i), "user-1")
		suite.Require().NoError(o.ChangeStatus(staff, order.Accepted, "", testNow))
		suite.addOrder(o)

		cmd, err := commands.NewAssignRiderCommand(staff, o.ID(), r.ID())
		suite.Require().NoError(err)
		assignments = append(assignments, func() error {
			_, err := handler.Handle(ctx, cmd)
			return err
		})
	}

	for _, err := range runConcurrently(assignments...) {
		suite.Require().NoError(err)
	}

	stored, err := suite.factory.Create().RiderRepository().Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(orders, stored.ActiveOrders())
	suite.Equal(orders, stored.TotalOrders())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRiderRepository_GetForUpdateHoldsTheRowLock() {
	ctx := context.Background()
	r := suite.seedRider("Ravi", "+919800000001")

	holder := suite.database.DB.WithContext(ctx).Begin()
	suite.Require().NoError(holder.Error)
	defer holder.Rollback()

	_, err := riderrepo.NewGormRiderRepository(holder).GetForUpdate(ctx, r.ID())
	suite.Require().NoError(err)

	err = suite.database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL lock_timeout = '200ms'").Error; err != nil {
			return err
		}
		_, err := riderrepo.NewGormRiderRepository(tx).GetForUpdate(ctx, r.ID())
		return err
	})
	suite.ErrorIs(err, errs.ErrTransactionConflict)

	all, err := riderrepo.NewGormRiderRepository(holder).GetAllForUpdate(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 1)
	suite.Equal(r.ID(), all[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIdentityReconciler_ConcurrentFirstLoginsCreateOneUser() {
	ctx := context.Background()
	phone := suite.phone("+919999999999")
	reconciler := commands.NewIdentityReconciler(
		identityUoWFactory{factory: suite.factory},
		commands.NewSequenceAllocator("DKN", kernel.NewBusinessClock(kernel.DefaultBusinessOffset)),
		func() time.Time { return testNow },
	)

	authIDs := []string{"auth_A", "auth_B"}
	results := make([]commands.ReconcileResult, len(authIDs))
	logins := make([]func() error, len(authIDs))
	for i, authID := range authIDs {
		logins[i] = func() error {
			result, err := reconciler.Reconcile(ctx, phone, authID, nil)
			results[i] = result
			return err
		}
	}

	for _, err := range runConcurrently(logins...) {
		suite.Require().NoError(err)
	}

	suite.Equal(results[0].ApplicationUserID, results[1].ApplicationUserID)
	suite.Contains(authIDs, results[0].ApplicationUserID)
	suite.NotEqual(results[0].IsNewUser, results[1].IsNewUser, "exactly one login creates the user")

	var users int64
	suite.Require().NoError(suite.database.DB.
		Table("users").
		Where("phone = ?", phone.String()).
		Count(&users).Error)
	suite.Equal(int64(1), users)
}
