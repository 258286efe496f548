package queries

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// LocationView is a location flattened for output. Latitude and Longitude are
// nil for unresolved addresses.
type LocationView struct {
	Address   string
	Latitude  *float64
	Longitude *float64
	UpdatedAt *time.Time
}

type CargoView struct {
	Description           string
	Weight                float64
	Length                float64
	Width                 float64
	Height                float64
	Volume                float64
	Items                 int
	RequiresRefrigeration bool
	IsHazardous           bool
	IsUrgent              bool
}

type StatusUpdateView struct {
	Status    order.Status
	Timestamp time.Time
	Note      string
}

// OrderView is the read model of an order.
type OrderView struct {
	ID                 kernel.UUID
	OrdererID          kernel.UUID
	TransporterID      *kernel.UUID
	VehicleID          *kernel.UUID
	Status             order.Status
	Pickup             LocationView
	Delivery           LocationView
	Cargo              CargoView
	Price              float64
	ProposedPrice      *float64
	PriceConfirmed     bool
	Currency           kernel.Currency
	DistanceKm         float64
	ApproachDistanceKm float64
	StatusUpdates      []StatusUpdateView
	CurrentLocation    *LocationView
	Notes              string
	CreatedAt          time.Time
	Version            int64
}

func newLocationView(l kernel.Location) LocationView {
	view := LocationView{Address: l.Address(), UpdatedAt: l.UpdatedAt()}
	if c, err := l.Coordinate(); err == nil {
		lat, lon := c.Latitude(), c.Longitude()
		view.Latitude = &lat
		view.Longitude = &lon
	}
	return view
}

func newOrderView(o *order.Order) OrderView {
	c := o.Cargo()
	dims := c.Dimensions()

	updates := make([]StatusUpdateView, 0, len(o.StatusUpdates()))
	for _, u := range o.StatusUpdates() {
		updates = append(updates, StatusUpdateView{Status: u.Status(), Timestamp: u.Timestamp(), Note: u.Note()})
	}

	view := OrderView{
		ID:            o.ID(),
		OrdererID:     o.OrdererID(),
		TransporterID: o.TransporterID(),
		VehicleID:     o.VehicleID(),
		Status:        o.Status(),
		Pickup:        newLocationView(o.Pickup()),
		Delivery:      newLocationView(o.Delivery()),
		Cargo: CargoView{
			Description:           c.Description(),
			Weight:                c.Weight(),
			Length:                dims.Length(),
			Width:                 dims.Width(),
			Height:                dims.Height(),
			Volume:                c.Volume(),
			Items:                 c.Items(),
			RequiresRefrigeration: c.RequiresRefrigeration(),
			IsHazardous:           c.IsHazardous(),
			IsUrgent:              c.IsUrgent(),
		},
		Price:              o.Price(),
		ProposedPrice:      o.ProposedPrice(),
		PriceConfirmed:     o.PriceConfirmed(),
		Currency:           o.Currency(),
		DistanceKm:         o.DistanceKm(),
		ApproachDistanceKm: o.ApproachDistanceKm(),
		StatusUpdates:      updates,
		Notes:              o.Notes(),
		CreatedAt:          o.CreatedAt(),
		Version:            o.Version(),
	}

	if current := o.CurrentLocation(); current != nil {
		lv := newLocationView(*current)
		view.CurrentLocation = &lv
	}

	return view
}

func newOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}
