package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/user"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Migrate creates the orders table and the prefix index used by
// GetPendingInCells.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&OrderDTO{}); err != nil {
		return err
	}
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_status_pickup_geohash
		ON orders (status, pickup_geohash varchar_pattern_ops)`).Error
}

// Add saves a new order. The stored row starts at version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	const version = 1
	dto := fromDomain(aggregate, version)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.MarkPersisted(version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order if nobody else changed it since it was loaded.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	next := aggregate.Version() + 1
	dto := fromDomain(aggregate, next)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	aggregate.MarkPersisted(next)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidErrorWithCause("order",
		fmt.Errorf("order %s was modified after version %d was read", aggregate.ID(), aggregate.Version()))
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll returns every order, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Order("created_at DESC, id"))
}

// GetByUser returns the orders the user placed or carries, newest first.
func (r *GormOrderRepository) GetByUser(ctx context.Context, userID kernel.UUID, role user.Role) ([]*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	id := userID.Bytes()
	query := r.db.WithContext(ctx)
	switch role {
	case user.Orderer:
		query = query.Where("orderer_id = ?", id)
	case user.Transporter:
		query = query.Where("transporter_id = ?", id)
	case "":
		query = query.Where("orderer_id = ? OR transporter_id = ?", id, id)
	default:
		return nil, role.Validate()
	}

	return r.find(query.Order("created_at DESC, id"))
}

// GetByStatus returns the orders in one status, oldest first.
func (r *GormOrderRepository) GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).Where("status = ?", status.String()).Order("created_at, id"))
}

// GetPendingInCells returns the pending orders whose pickup lies in one of the geohash cells.
func (r *GormOrderRepository) GetPendingInCells(ctx context.Context, cells []string) ([]*order.Order, error) {
	if len(cells) == 0 {
		return []*order.Order{}, nil
	}

	inCells := r.db.Where("pickup_geohash LIKE ?", cells[0]+"%")
	for _, cell := range cells[1:] {
		inCells = inCells.Or("pickup_geohash LIKE ?", cell+"%")
	}

	return r.find(r.db.WithContext(ctx).
		Where("status = ?", order.Pending.String()).
		Where(inCells).
		Order("created_at, id"))
}

// GetActive returns all orders that occupy vehicle capacity.
func (r *GormOrderRepository) GetActive(ctx context.Context) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("status IN ?", activeStatuses()).Order("created_at, id"))
}

// GetActiveByVehicle returns the orders occupying one vehicle.
func (r *GormOrderRepository) GetActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*order.Order, error) {
	if err := vehicleID.Validate(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status IN ?", vehicleID.Bytes(), activeStatuses()).
		Order("created_at, id"))
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func activeStatuses() []string {
	active := order.ActiveStatuses()
	names := make([]string, 0, len(active))
	for _, s := range active {
		names = append(names, s.String())
	}
	return names
}
