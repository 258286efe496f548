// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status history is stored as a JSONB array next to the order row.
type OrderDTO struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	OrdererID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	TransporterID      *uuid.UUID         `gorm:"type:uuid;index"`
	VehicleID          *uuid.UUID         `gorm:"type:uuid;index"`
	Status             string             `gorm:"type:varchar(32);not null;index"`
	Pickup             LocationDTO        `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery           LocationDTO        `gorm:"embedded;embeddedPrefix:delivery_"`
	Cargo              CargoDTO           `gorm:"embedded;embeddedPrefix:cargo_"`
	Price              float64            `gorm:"type:numeric(14,2);not null"`
	ProposedPrice      *float64           `gorm:"type:numeric(14,2)"`
	Currency           string             `gorm:"type:char(3);not null"`
	DistanceKm         float64            `gorm:"not null"`
	ApproachDistanceKm float64            `gorm:"not null"`
	StatusUpdates      []StatusUpdateDTO  `gorm:"type:jsonb;serializer:json;not null"`
	CurrentLocation    TrackedLocationDTO `gorm:"embedded;embeddedPrefix:current_"`
	Notes              string             `gorm:"type:text"`
	CreatedAt          time.Time          `gorm:"not null;index"`
	Version            int64              `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO stores an address with its optional coordinate and geohash.
type LocationDTO struct {
	Address   string   `gorm:"type:text"`
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
	Geohash   *string  `gorm:"type:varchar(12)"`
}

// TrackedLocationDTO is the live position of a shipment. All columns are
// NULL until the first tracking update.
type TrackedLocationDTO struct {
	Address   *string  `gorm:"type:text"`
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
	TrackedAt *time.Time
}

type CargoDTO struct {
	Description           string  `gorm:"type:text;not null"`
	Weight                float64 `gorm:"not null"`
	Length                float64 `gorm:"not null"`
	Width                 float64 `gorm:"not null"`
	Height                float64 `gorm:"not null"`
	Items                 int     `gorm:"not null"`
	RequiresRefrigeration bool    `gorm:"not null"`
	IsHazardous           bool    `gorm:"not null"`
	IsUrgent              bool    `gorm:"not null"`
}

// StatusUpdateDTO is one element of the JSONB status history.
type StatusUpdateDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

func locationFromDomain(l kernel.Location) LocationDTO {
	dto := LocationDTO{Address: l.Address()}
	if c, err := l.Coordinate(); err == nil {
		lat, lon, hash := c.Latitude(), c.Longitude(), c.Geohash(kernel.GeohashPrecision)
		dto.Latitude, dto.Longitude, dto.Geohash = &lat, &lon, &hash
	}
	return dto
}

func locationToDomain(dto LocationDTO) (kernel.Location, error) {
	coordinate, err := coordinateToDomain(dto.Latitude, dto.Longitude)
	if err != nil {
		return kernel.Location{}, err
	}
	return kernel.NewLocation(dto.Address, coordinate)
}

func coordinateToDomain(latitude, longitude *float64) (*kernel.Coordinate, error) {
	if latitude == nil || longitude == nil {
		return nil, nil
	}
	c, err := kernel.NewCoordinate(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// fromDomain converts an order domain aggregate to its database representation.
// version is the value the row will carry after the write.
func fromDomain(o *order.Order, version int64) OrderDTO {
	c := o.Cargo()
	dims := c.Dimensions()
	reqs := c.Requirements()

	updates := make([]StatusUpdateDTO, 0, len(o.StatusUpdates()))
	for _, u := range o.StatusUpdates() {
		updates = append(updates, StatusUpdateDTO{
			Status:    u.Status().String(),
			Timestamp: u.Timestamp(),
			Note:      u.Note(),
		})
	}

	var current TrackedLocationDTO
	if l := o.CurrentLocation(); l != nil {
		address := l.Address()
		current.Address = &address
		current.TrackedAt = l.UpdatedAt()
		if coordinate, err := l.Coordinate(); err == nil {
			lat, lon := coordinate.Latitude(), coordinate.Longitude()
			current.Latitude, current.Longitude = &lat, &lon
		}
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		OrdererID:     o.OrdererID().Bytes(),
		TransporterID: uuidPtr(o.TransporterID()),
		VehicleID:     uuidPtr(o.VehicleID()),
		Status:        o.Status().String(),
		Pickup:        locationFromDomain(o.Pickup()),
		Delivery:      locationFromDomain(o.Delivery()),
		Cargo: CargoDTO{
			Description:           c.Description(),
			Weight:                c.Weight(),
			Length:                dims.Length(),
			Width:                 dims.Width(),
			Height:                dims.Height(),
			Items:                 c.Items(),
			RequiresRefrigeration: reqs.Refrigeration,
			IsHazardous:           reqs.Hazardous,
			IsUrgent:              reqs.Urgent,
		},
		Price:              o.Price(),
		ProposedPrice:      o.ProposedPrice(),
		Currency:           o.Currency().String(),
		DistanceKm:         o.DistanceKm(),
		ApproachDistanceKm: o.ApproachDistanceKm(),
		StatusUpdates:      updates,
		CurrentLocation:    current,
		Notes:              o.Notes(),
		CreatedAt:          o.CreatedAt(),
		Version:            version,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ordererID, err := kernel.UUIDFromBytes(dto.OrdererID[:])
	if err != nil {
		return nil, err
	}
	transporterID, err := kernelUUIDPtr(dto.TransporterID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernelUUIDPtr(dto.VehicleID)
	if err != nil {
		return nil, err
	}

	pickup, err := locationToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	delivery, err := locationToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	dims, err := cargo.NewDimensions(dto.Cargo.Length, dto.Cargo.Width, dto.Cargo.Height)
	if err != nil {
		return nil, err
	}
	load, err := cargo.NewCargo(dto.Cargo.Description, dto.Cargo.Weight, dims, dto.Cargo.Items, cargo.Requirements{
		Refrigeration: dto.Cargo.RequiresRefrigeration,
		Hazardous:     dto.Cargo.IsHazardous,
		Urgent:        dto.Cargo.IsUrgent,
	})
	if err != nil {
		return nil, err
	}

	updates := make([]order.StatusUpdate, 0, len(dto.StatusUpdates))
	for _, u := range dto.StatusUpdates {
		update, updateErr := order.NewStatusUpdate(order.Status(u.Status), u.Timestamp, u.Note)
		if updateErr != nil {
			return nil, updateErr
		}
		updates = append(updates, update)
	}

	var current *kernel.Location
	if dto.CurrentLocation.Address != nil {
		coordinate, coordErr := coordinateToDomain(dto.CurrentLocation.Latitude, dto.CurrentLocation.Longitude)
		if coordErr != nil {
			return nil, coordErr
		}
		l, locErr := kernel.RestoreLocation(*dto.CurrentLocation.Address, coordinate, dto.CurrentLocation.TrackedAt)
		if locErr != nil {
			return nil, locErr
		}
		current = &l
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                 id,
		OrdererID:          ordererID,
		TransporterID:      transporterID,
		VehicleID:          vehicleID,
		Status:             order.Status(dto.Status),
		Pickup:             pickup,
		Delivery:           delivery,
		Cargo:              load,
		Price:              dto.Price,
		ProposedPrice:      dto.ProposedPrice,
		Currency:           kernel.Currency(dto.Currency),
		DistanceKm:         dto.DistanceKm,
		ApproachDistanceKm: dto.ApproachDistanceKm,
		StatusUpdates:      updates,
		CurrentLocation:    current,
		Notes:              dto.Notes,
		CreatedAt:          dto.CreatedAt,
		Version:            dto.Version,
	})
}
