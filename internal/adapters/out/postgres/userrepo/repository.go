package userrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Migrate creates the users and vehicles tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserDTO{}, &VehicleDTO{})
}

// Add saves a new user with its vehicles.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the user row and upserts every vehicle of the fleet.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":  dto.Name,
			"email": dto.Email,
			"phone": dto.Phone,
			"role":  dto.Role,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	if len(dto.Vehicles) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Vehicles).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a user with its fleet.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.withVehicles(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll returns every user ordered by id.
func (r *GormUserRepository) GetAll(ctx context.Context) ([]*user.User, error) {
	return r.find(r.withVehicles(ctx).Order("id"))
}

// GetAllTransporters returns the fleet owners ordered by id, vehicles ordered by id.
func (r *GormUserRepository) GetAllTransporters(ctx context.Context) ([]*user.User, error) {
	return r.find(r.withVehicles(ctx).Where("role = ?", user.Transporter.String()).Order("id"))
}

// GetByVehicle returns the owner of the vehicle.
func (r *GormUserRepository) GetByVehicle(ctx context.Context, vehicleID kernel.UUID) (*user.User, error) {
	if err := vehicleID.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	err := r.withVehicles(ctx).
		Where("id = (?)", r.db.Model(&VehicleDTO{}).Select("user_id").Where("id = ?", vehicleID.Bytes())).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", vehicleID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByVehicleForUpdate locks the vehicle row with SELECT ... FOR UPDATE and
// returns its owner. Outside a transaction the lock is released immediately.
func (r *GormUserRepository) GetByVehicleForUpdate(ctx context.Context, vehicleID kernel.UUID) (*user.User, error) {
	if err := vehicleID.Validate(); err != nil {
		return nil, err
	}

	var locked VehicleDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "user_id").
		Where("id = ?", vehicleID.Bytes()).
		Take(&locked).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", vehicleID.String())
		}
		return nil, err
	}

	return r.GetByVehicle(ctx, vehicleID)
}

func (r *GormUserRepository) withVehicles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Vehicles", func(db *gorm.DB) *gorm.DB {
		return db.Order("vehicles.id")
	})
}

func (r *GormUserRepository) find(query *gorm.DB) ([]*user.User, error) {
	var dtos []UserDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}
