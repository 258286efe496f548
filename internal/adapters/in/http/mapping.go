package http

import (
	"errors"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

var errHalfCoordinate = errors.New("latitude and longitude must be given together")

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toCoordinate(l Location) (*kernel.Coordinate, error) {
	switch {
	case l.Latitude == nil && l.Longitude == nil:
		return nil, nil
	case l.Latitude == nil || l.Longitude == nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("location", errHalfCoordinate)
	}

	c, err := kernel.NewCoordinate(*l.Latitude, *l.Longitude)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func commandLocation(l Location) (commands.LocationInput, error) {
	c, err := toCoordinate(l)
	if err != nil {
		return commands.LocationInput{}, err
	}
	return commands.LocationInput{Address: l.Address, Coordinate: c}, nil
}

func queryLocation(l Location) (queries.LocationInput, error) {
	c, err := toCoordinate(l)
	if err != nil {
		return queries.LocationInput{}, err
	}
	return queries.LocationInput{Address: l.Address, Coordinate: c}, nil
}

func toCargo(c Cargo) (cargo.Cargo, error) {
	dims, err := cargo.NewDimensions(c.Length, c.Width, c.Height)
	if err != nil {
		return cargo.Cargo{}, err
	}
	return cargo.NewCargo(c.Description, c.Weight, dims, c.Items, cargo.Requirements{
		Refrigeration: c.RequiresRefrigeration,
		Hazardous:     c.IsHazardous,
		Urgent:        c.IsUrgent,
	})
}

func toLocation(v queries.LocationView) Location {
	return Location{
		Address:   v.Address,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		UpdatedAt: v.UpdatedAt,
	}
}

func toOptionalUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	u := id.Bytes()
	return &u
}

func toOrder(v queries.OrderView) Order {
	updates := make([]StatusUpdate, 0, len(v.StatusUpdates))
	for _, u := range v.StatusUpdates {
		updates = append(updates, StatusUpdate{
			Status:    u.Status.String(),
			Timestamp: u.Timestamp,
			Note:      u.Note,
		})
	}

	o := Order{
		ID:            v.ID.Bytes(),
		OrdererID:     v.OrdererID.Bytes(),
		TransporterID: toOptionalUUID(v.TransporterID),
		VehicleID:     toOptionalUUID(v.VehicleID),
		Status:        v.Status.String(),
		Pickup:        toLocation(v.Pickup),
		Delivery:      toLocation(v.Delivery),
		Cargo: Cargo{
			Description:           v.Cargo.Description,
			Weight:                v.Cargo.Weight,
			Length:                v.Cargo.Length,
			Width:                 v.Cargo.Width,
			Height:                v.Cargo.Height,
			Volume:                v.Cargo.Volume,
			Items:                 v.Cargo.Items,
			RequiresRefrigeration: v.Cargo.RequiresRefrigeration,
			IsHazardous:           v.Cargo.IsHazardous,
			IsUrgent:              v.Cargo.IsUrgent,
		},
		Price:              v.Price,
		ProposedPrice:      v.ProposedPrice,
		PriceConfirmed:     v.PriceConfirmed,
		Currency:           v.Currency.String(),
		DistanceKm:         v.DistanceKm,
		ApproachDistanceKm: v.ApproachDistanceKm,
		StatusUpdates:      updates,
		Notes:              v.Notes,
		CreatedAt:          v.CreatedAt,
		Version:            v.Version,
	}
	if v.CurrentLocation != nil {
		current := toLocation(*v.CurrentLocation)
		o.CurrentLocation = &current
	}
	return o
}

func toOrders(views []queries.OrderView) []Order {
	orders := make([]Order, 0, len(views))
	for _, v := range views {
		orders = append(orders, toOrder(v))
	}
	return orders
}
