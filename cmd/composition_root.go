package cmd

import (
	"freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"
	"freight/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	uowFactory *postgres.GormUnitOfWorkFactory
	geocoder   ports.Geocoder
	registry   *prometheus.Registry
	logger     *zap.Logger

	// reads go through a unit of work that is never begun, so the
	// repositories use the pool directly.
	readUoW ports.UnitOfWork
}

func NewCompositionRoot(
	config    Config,
	gormDB    *gorm.DB,
	publisher ports.EventPublisher,
	geocoder  ports.Geocoder,
	registry  *prometheus.Registry,
	logger    *zap.Logger,
) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger.With(zap.String("component", "unit_of_work")))
	return CompositionRoot{
		config:     config,
		uowFactory: uowFactory,
		geocoder:   geocoder,
		registry:   registry,
		logger:     logger,
		readUoW:    uowFactory.Create(),
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) userUoW() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoW())
}

func (c *CompositionRoot) CreateAddVehicleCommandHandler() commands.AddVehicleCommandHandler {
	return commands.NewAddVehicleCommandHandler(c.userUoW(), c.geocoder)
}

func (c *CompositionRoot) CreateUpdateVehicleCommandHandler() commands.UpdateVehicleCommandHandler {
	return commands.NewUpdateVehicleCommandHandler(c.userUoW(), c.geocoder)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.geocoder)
}

func (c *CompositionRoot) CreatePostOrderCommandHandler() commands.PostOrderCommandHandler {
	return commands.NewPostOrderCommandHandler(c.uow(), c.geocoder)
}

func (c *CompositionRoot) CreateProposePriceCommandHandler() commands.ProposePriceCommandHandler {
	return commands.NewProposePriceCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAcceptProposedPriceCommandHandler() commands.AcceptProposedPriceCommandHandler {
	return commands.NewAcceptProposedPriceCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateUpdateOrderLocationCommandHandler() commands.UpdateOrderLocationCommandHandler {
	return commands.NewUpdateOrderLocationCommandHandler(c.orderUoW(), c.geocoder)
}

func (c *CompositionRoot) CreateFindMatchingVehiclesQueryHandler() queries.FindMatchingVehiclesQueryHandler {
	return queries.NewFindMatchingVehiclesQueryHandler(
		c.geocoder,
		c.readUoW.UserRepository(),
		c.readUoW.OrderRepository(),
		c.config.DefaultSearchRadiusKm,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readUoW.OrderRepository())
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.readUoW.OrderRepository())
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.readUoW.UserRepository(), c.readUoW.OrderRepository())
}

func (c *CompositionRoot) CreateGetVehicleCapacityQueryHandler() queries.GetVehicleCapacityQueryHandler {
	return queries.NewGetVehicleCapacityQueryHandler(c.readUoW.UserRepository(), c.readUoW.OrderRepository())
}

func (c *CompositionRoot) CreateGetOverbookedVehiclesQueryHandler() queries.GetOverbookedVehiclesQueryHandler {
	return queries.NewGetOverbookedVehiclesQueryHandler(c.readUoW.UserRepository(), c.readUoW.OrderRepository())
}

// CreateHTTPServer builds the echo router with every use case mounted.
func (c *CompositionRoot) CreateHTTPServer() *echo.Echo {
	metrics := http.NewMetrics(c.registry)
	server := http.NewServer(http.Handlers{
		RegisterUser:         c.CreateRegisterUserCommandHandler(),
		AddVehicle:           c.CreateAddVehicleCommandHandler(),
		UpdateVehicle:        c.CreateUpdateVehicleCommandHandler(),
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		PostOrder:            c.CreatePostOrderCommandHandler(),
		ProposePrice:         c.CreateProposePriceCommandHandler(),
		AcceptProposedPrice:  c.CreateAcceptProposedPriceCommandHandler(),
		UpdateOrderStatus:    c.CreateUpdateOrderStatusCommandHandler(),
		UpdateOrderLocation:  c.CreateUpdateOrderLocationCommandHandler(),
		FindMatchingVehicles: c.CreateFindMatchingVehiclesQueryHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		GetUserOrders:        c.CreateGetUserOrdersQueryHandler(),
		GetAvailableOrders:   c.CreateGetAvailableOrdersQueryHandler(),
		GetVehicleCapacity:   c.CreateGetVehicleCapacityQueryHandler(),
	}, metrics)
	return http.NewRouter(server, metrics, c.registry, c.logger.With(zap.String("component", "http")))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverbookedVehiclesQueryHandler(), c.config.CapacityAuditSchedule, c.logger)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
