package cmd

import (
	"log/slog"
	"time"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/identity"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/rabbitmq"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	verifier   *identity.JWTVerifier
	allocator  commands.SequenceAllocator
	assigner   services.DeliveryAssigner
	clock      commands.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.OrderEventPublisher, logger *slog.Logger) (CompositionRoot, error) {
	verifier, err := identity.NewJWTVerifier(config.IdentityVerifierSecret, config.SessionSecret, config.SessionTTL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		verifier:   verifier,
		allocator:  commands.NewSequenceAllocator(config.OrderNumberPrefix, kernel.NewBusinessClock(config.BusinessUTCOffset)),
		assigner:   services.NewDeliveryAssigner(),
		clock:      time.Now,
		logger:     logger,
	}, nil
}

// NewEventPublisher connects to RabbitMQ when a URL is configured and falls
// back to logging events otherwise. The returned func releases the connection.
func NewEventPublisher(config Config, logger *slog.Logger) (ports.OrderEventPublisher, func(), error) {
	if config.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL is empty, order events are only logged")
		return rabbitmq.NewLogPublisher(logger), func() {}, nil
	}

	client, err := rabbitmq.Dial(config.RabbitMQURL, logger)
	if err != nil {
		return nil, nil, err
	}
	if err = client.DeclareExchange(config.RabbitMQExchange); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Error("failed to close rabbitmq connection", "error", closeErr)
		}
	}
	return rabbitmq.NewOrderEventPublisher(client.Channel(), config.RabbitMQExchange), closeFn, nil
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	addressBook := c.CreateAddressBookCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		ExchangeCredential: c.CreateExchangeCredentialCommandHandler(),
		RiderLogin:         c.CreateRiderLoginCommandHandler(),
		CreateRider:        c.CreateCreateRiderCommandHandler(),
		UpdateProfile:      c.CreateUpdateProfileCommandHandler(),
		ChangeUserRole:     c.CreateChangeUserRoleCommandHandler(),
		AddressBook:        addressBook,
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:  c.CreateChangeOrderStatusCommandHandler(),
		AssignRider:        c.CreateAssignRiderCommandHandler(),
		PickupOrder:        c.CreatePickupOrderCommandHandler(),
		DeliverOrder:       c.CreateDeliverOrderCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		ListRiders:         c.CreateListRidersQueryHandler(),
		ListAddresses:      c.CreateListAddressesQueryHandler(),
	}, c.verifier, c.config.ConflictRetryAttempts, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRecountRiderLoadCommandHandler(),
		c.config.RiderRecountSchedule,
		c.config.ConflictRetryAttempts,
		c.logger,
	)
}

func (c *CompositionRoot) CreateIdentityReconciler() commands.IdentityReconciler {
	var f commands.IdentityUoWFactory = FuncIdentityUoWFactory(func() commands.IdentityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIdentityReconciler(f, c.allocator, c.clock)
}

func (c *CompositionRoot) CreateExchangeCredentialCommandHandler() commands.ExchangeCredentialCommandHandler {
	return commands.NewExchangeCredentialCommandHandler(
		c.verifier,
		c.CreateIdentityReconciler(),
		c.config.IdentityFallbackOnError,
		c.logger,
	)
}

func (c *CompositionRoot) CreateNextOrderNumberCommandHandler() commands.NextOrderNumberCommandHandler {
	var f commands.CounterUoWFactory = FuncCounterUoWFactory(func() commands.CounterUoW {
		return c.uowFactory.Create()
	})
	return commands.NewNextOrderNumberCommandHandler(f, c.allocator)
}

func (c *CompositionRoot) CreateRiderLoginCommandHandler() commands.RiderLoginCommandHandler {
	return commands.NewRiderLoginCommandHandler(c.riderUoWFactory(), c.verifier)
}

func (c *CompositionRoot) CreateCreateRiderCommandHandler() commands.CreateRiderCommandHandler {
	return commands.NewCreateRiderCommandHandler(c.riderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateProfileCommandHandler() commands.UpdateProfileCommandHandler {
	return commands.NewUpdateProfileCommandHandler(c.userUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeUserRoleCommandHandler() commands.ChangeUserRoleCommandHandler {
	return commands.NewChangeUserRoleCommandHandler(c.userUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAddressBookCommandHandler() commands.AddressBookCommandHandler {
	var f commands.AddressBookUoWFactory = FuncAddressBookUoWFactory(func() commands.AddressBookUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddressBookCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.allocator, c.clock)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.deliveryUoWFactory(), c.assigner, c.clock)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.deliveryUoWFactory(), c.assigner, c.clock)
}

func (c *CompositionRoot) CreatePickupOrderCommandHandler() commands.PickupOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPickupOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.deliveryUoWFactory(), c.assigner, c.clock)
}

func (c *CompositionRoot) CreateRecountRiderLoadCommandHandler() commands.RecountRiderLoadCommandHandler {
	return commands.NewRecountRiderLoadCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRidersQueryHandler() queries.ListRidersQueryHandler {
	return queries.NewListRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAddressesQueryHandler() queries.ListAddressesQueryHandler {
	return queries.NewListAddressesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

type FuncCounterUoWFactory func() commands.CounterUoW

func (f FuncCounterUoWFactory) Create() commands.CounterUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncIdentityUoWFactory func() commands.IdentityUoW

func (f FuncIdentityUoWFactory) Create() commands.IdentityUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncAddressBookUoWFactory func() commands.AddressBookUoW

func (f FuncAddressBookUoWFactory) Create() commands.AddressBookUoW {
	return f()
}
