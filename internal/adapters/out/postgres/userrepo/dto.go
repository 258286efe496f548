// Package userrepo persists users together with their fleet. Vehicles live in
// their own table and are always loaded with the owning user.
package userrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user aggregates.
type UserDTO struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name     string       `gorm:"type:varchar(255);not null"`
	Email    string       `gorm:"type:varchar(255)"`
	Phone    string       `gorm:"type:varchar(64)"`
	Role     string       `gorm:"type:varchar(16);not null;index"`
	Vehicles []VehicleDTO `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserDTO) TableName() string {
	return "users"
}

// VehicleDTO represents a vehicle row. Tariff rates are flattened into columns.
type VehicleDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	Type           string      `gorm:"type:varchar(16);not null"`
	Model          string      `gorm:"type:varchar(255)"`
	LicensePlate   string      `gorm:"type:varchar(32);not null"`
	MaxWeight      float64     `gorm:"not null"`
	MaxVolume      float64     `gorm:"not null"`
	IsRefrigerated bool        `gorm:"not null"`
	Available      bool        `gorm:"not null"`
	Location       LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Currency       string      `gorm:"type:char(3);not null"`
	Tariff         TariffDTO   `gorm:"embedded;embeddedPrefix:tariff_"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

// LocationDTO is the current vehicle position. Vehicles are always geocoded.
type LocationDTO struct {
	Address   string  `gorm:"type:text"`
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
	Geohash   string  `gorm:"type:varchar(12);not null;index"`
}

type TariffDTO struct {
	BasePrice            float64 `gorm:"not null"`
	PricePerKm           float64 `gorm:"not null"`
	PricePerApproachKm   float64 `gorm:"not null"`
	PricePerKg           float64 `gorm:"not null"`
	PricePerM3           float64 `gorm:"not null"`
	CoolingCoefficient   float64 `gorm:"not null"`
	HazardousCoefficient float64 `gorm:"not null"`
	UrgentCoefficient    float64 `gorm:"not null"`
}

// fromDomain converts a user aggregate with its fleet to its database representation.
func fromDomain(u *user.User) UserDTO {
	userID := u.ID().Bytes()
	vehicles := make([]VehicleDTO, 0, len(u.Vehicles()))

	for _, v := range u.Vehicles() {
		c := v.Coordinate()
		rates := v.Tariff().Rates()
		vehicles = append(vehicles, VehicleDTO{
			ID:             v.ID().Bytes(),
			UserID:         userID,
			Type:           string(v.Type()),
			Model:          v.Model(),
			LicensePlate:   v.LicensePlate(),
			MaxWeight:      v.MaxWeight(),
			MaxVolume:      v.MaxVolume(),
			IsRefrigerated: v.IsRefrigerated(),
			Available:      v.IsAvailable(),
			Location: LocationDTO{
				Address:   v.Location().Address(),
				Latitude:  c.Latitude(),
				Longitude: c.Longitude(),
				Geohash:   c.Geohash(kernel.GeohashPrecision),
			},
			Currency: v.Currency().String(),
			Tariff:   TariffDTO(rates),
		})
	}

	return UserDTO{
		ID:       userID,
		Name:     u.Name(),
		Email:    u.Email(),
		Phone:    u.Phone(),
		Role:     u.Role().String(),
		Vehicles: vehicles,
	}
}

// toDomain converts a database DTO to a user aggregate using RestoreUser.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicles := make([]*user.Vehicle, 0, len(dto.Vehicles))
	for _, vDto := range dto.Vehicles {
		v, vErr := vehicleToDomain(vDto)
		if vErr != nil {
			return nil, vErr
		}
		vehicles = append(vehicles, v)
	}

	return user.RestoreUser(id, dto.Name, dto.Email, dto.Phone, user.Role(dto.Role), vehicles)
}

func vehicleToDomain(dto VehicleDTO) (*user.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	coordinate, err := kernel.NewCoordinate(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewResolvedLocation(dto.Location.Address, coordinate)
	if err != nil {
		return nil, err
	}

	tariff, err := user.NewTariff(user.TariffRates(dto.Tariff))
	if err != nil {
		return nil, err
	}

	return user.RestoreVehicle(id, user.VehicleType(dto.Type), dto.Model, dto.LicensePlate,
		dto.MaxWeight, dto.MaxVolume, dto.IsRefrigerated, dto.Available, location,
		kernel.Currency(dto.Currency), tariff)
}
