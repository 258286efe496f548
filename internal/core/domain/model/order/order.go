package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"freight/internal/core/domain/model/cargo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// one of the package constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewPostedOrder or NewMatchedOrder constructor")

	// ErrNoProposedPrice is returned when accepting a price that was never proposed.
	ErrNoProposedPrice = errors.New("no proposed price to accept")

	// ErrStatusUpdatesAreRequired is returned when restoring an order without history.
	ErrStatusUpdatesAreRequired = errs.NewValueIsRequiredError("statusUpdates")
)

// Order is the aggregate root of a freight shipment. It owns the append-only
// status history and is only mutated through the lifecycle methods below.
//
// Invariants:
//   - pickup and delivery locations are geocoded; distanceKm is derived from them
//   - every lifecycle method appends exactly one StatusUpdate
//   - StatusUpdate timestamps are strictly increasing
//   - status changes follow the transition table in status.go
//   - orders are never deleted; cancelled is a terminal status
//
// price and proposedPrice are tracked separately. A proposal also writes the
// proposed amount into price as a provisional value; PriceConfirmed tells
// whether price has been agreed by both sides.
type Order struct {
	id                 kernel.UUID
	ordererID          kernel.UUID
	transporterID      *kernel.UUID
	vehicleID          *kernel.UUID
	status             Status
	pickup             kernel.Location
	delivery           kernel.Location
	cargo              cargo.Cargo
	price              float64
	proposedPrice      *float64
	currency           kernel.Currency
	distanceKm         float64
	approachDistanceKm float64
	statusUpdates      []StatusUpdate
	currentLocation    *kernel.Location
	notes              string
	createdAt          time.Time
	version            int64

	events []StatusChanged
	guard  guard.ConstructorGuard
}

// NewPostedOrder creates an open posting without a transporter. The order starts
// in Pending with a single status update. budget is the orderer's indicative
// price and may be zero.
//
// Example:
//
//	o, err := order.NewPostedOrder(kernel.NewUUID(), ordererID, pickup, delivery, c, 0, kernel.USD, "", time.Now())
func NewPostedOrder(
	id kernel.UUID,
	ordererID kernel.UUID,
	pickup kernel.Location,
	delivery kernel.Location,
	c cargo.Cargo,
	budget float64,
	currency kernel.Currency,
	notes string,
	now time.Time,
) (*Order, error) {
	o, err := newOrder(id, ordererID, pickup, delivery, c, budget, currency, notes, now)
	if err != nil {
		return nil, err
	}

	o.appendUpdate(Pending, now, fmt.Sprintf("Order created with status: %s", Pending))
	return o, nil
}

// NewMatchedOrder creates an order for a vehicle the orderer has already selected
// and priced. The order starts in Accepted with two status updates: the creation
// entry and the automatic acceptance. The currency follows the vehicle.
func NewMatchedOrder(
	id kernel.UUID,
	ordererID kernel.UUID,
	pickup kernel.Location,
	delivery kernel.Location,
	c cargo.Cargo,
	transporterID kernel.UUID,
	vehicle *user.Vehicle,
	price float64,
	notes string,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(transporterID.Validate(), vehicle.Validate(), validatePrice(price)); err != nil {
		return nil, err
	}

	o, err := newOrder(id, ordererID, pickup, delivery, c, price, vehicle.Currency(), notes, now)
	if err != nil {
		return nil, err
	}

	o.assign(transporterID, vehicle)
	o.appendUpdate(Accepted, now, fmt.Sprintf("Order created with status: %s", Accepted))
	o.appendUpdate(Accepted, now, fmt.Sprintf("Order automatically accepted with price: %s", o.currency.Format(price)))
	return o, nil
}

func newOrder(
	id kernel.UUID,
	ordererID kernel.UUID,
	pickup kernel.Location,
	delivery kernel.Location,
	c cargo.Cargo,
	price float64,
	currency kernel.Currency,
	notes string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		notes:     strings.TrimSpace(notes),
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrdererID(ordererID),
		o.setRoute(pickup, delivery),
		o.setCargo(c),
		o.setPrice(price),
		o.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the persisted state of an order. It is consumed by RestoreOrder.
type Snapshot struct {
	ID                 kernel.UUID
	OrdererID          kernel.UUID
	TransporterID      *kernel.UUID
	VehicleID          *kernel.UUID
	Status             Status
	Pickup             kernel.Location
	Delivery           kernel.Location
	Cargo              cargo.Cargo
	Price              float64
	ProposedPrice      *float64
	Currency           kernel.Currency
	DistanceKm         float64
	ApproachDistanceKm float64
	StatusUpdates      []StatusUpdate
	CurrentLocation    *kernel.Location
	Notes              string
	CreatedAt          time.Time
	Version            int64
}

// RestoreOrder reconstructs an Order from persistent storage. The stored
// distance is kept as is and no events are raised.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		transporterID:      s.TransporterID,
		vehicleID:          s.VehicleID,
		proposedPrice:      s.ProposedPrice,
		distanceKm:         s.DistanceKm,
		approachDistanceKm: s.ApproachDistanceKm,
		currentLocation:    s.CurrentLocation,
		notes:              s.Notes,
		createdAt:          s.CreatedAt.UTC(),
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setOrdererID(s.OrdererID),
		o.setStatus(s.Status),
		o.setCargo(s.Cargo),
		o.setPrice(s.Price),
		o.setCurrency(s.Currency),
		s.Pickup.Validate(),
		s.Delivery.Validate(),
	); err != nil {
		return nil, err
	}
	o.pickup = s.Pickup
	o.delivery = s.Delivery

	if len(s.StatusUpdates) == 0 {
		return nil, ErrStatusUpdatesAreRequired
	}
	o.statusUpdates = make([]StatusUpdate, len(s.StatusUpdates))
	copy(o.statusUpdates, s.StatusUpdates)

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	if other == nil {
		return false
	}
	return o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID             { return o.id }
func (o *Order) OrdererID() kernel.UUID      { return o.ordererID }
func (o *Order) Status() Status              { return o.status }
func (o *Order) Pickup() kernel.Location     { return o.pickup }
func (o *Order) Delivery() kernel.Location   { return o.delivery }
func (o *Order) Cargo() cargo.Cargo          { return o.cargo }
func (o *Order) Price() float64              { return o.price }
func (o *Order) Currency() kernel.Currency   { return o.currency }
func (o *Order) DistanceKm() float64         { return o.distanceKm }
func (o *Order) ApproachDistanceKm() float64 { return o.approachDistanceKm }
func (o *Order) Notes() string               { return o.notes }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) Version() int64              { return o.version }
func (o *Order) TransporterID() *kernel.UUID { return copyUUID(o.transporterID) }
func (o *Order) VehicleID() *kernel.UUID     { return copyUUID(o.vehicleID) }

// CurrentLocation is nil until the first tracking update.
func (o *Order) CurrentLocation() *kernel.Location {
	if o.currentLocation == nil {
		return nil
	}
	loc := *o.currentLocation
	return &loc
}

// ProposedPrice is nil outside of price negotiation.
func (o *Order) ProposedPrice() *float64 {
	if o.proposedPrice == nil {
		return nil
	}
	p := *o.proposedPrice
	return &p
}

// PriceConfirmed reports whether price was agreed by both sides. It is false
// for open postings and while a proposal is waiting for acceptance.
func (o *Order) PriceConfirmed() bool {
	return o.transporterID != nil && o.proposedPrice == nil
}

// StatusUpdates returns a copy of the history in chronological order.
func (o *Order) StatusUpdates() []StatusUpdate {
	out := make([]StatusUpdate, len(o.statusUpdates))
	copy(out, o.statusUpdates)
	return out
}

// IsAssignedTo reports whether the order is bound to the given vehicle.
func (o *Order) IsAssignedTo(vehicleID kernel.UUID) bool {
	return o.vehicleID != nil && o.vehicleID.IsEqual(vehicleID)
}

// ConsumesCapacityOf reports whether the order occupies space on the given vehicle right now.
func (o *Order) ConsumesCapacityOf(vehicleID kernel.UUID) bool {
	return o.status.IsActive() && o.IsAssignedTo(vehicleID)
}

// InvolvesUser reports whether the user is the orderer or the transporter of the order.
func (o *Order) InvolvesUser(userID kernel.UUID) bool {
	return o.ordererID.IsEqual(userID) || (o.transporterID != nil && o.transporterID.IsEqual(userID))
}

// ProposePrice records a transporter's offer. Only allowed while the order is
// Pending or already in DeterminePrice. The transporter and vehicle are bound,
// the currency follows the vehicle and the approach distance is recomputed
// from the vehicle position.
func (o *Order) ProposePrice(price float64, transporterID kernel.UUID, vehicle *user.Vehicle, now time.Time) error {
	if err := o.status.ValidateProposal(); err != nil {
		return err
	}
	if err := errors.Join(validatePrice(price), transporterID.Validate(), vehicle.Validate()); err != nil {
		return err
	}

	o.assign(transporterID, vehicle)
	o.currency = vehicle.Currency()
	proposed := price
	o.proposedPrice = &proposed
	o.price = price
	o.appendUpdate(DeterminePrice, now, fmt.Sprintf("Transporter proposed price: %s", o.currency.Format(price)))
	return nil
}

// AcceptProposedPrice confirms the pending proposal. It fails with
// ErrNoProposedPrice and leaves the order untouched when there is none.
func (o *Order) AcceptProposedPrice(now time.Time) error {
	if o.proposedPrice == nil {
		return ErrNoProposedPrice
	}
	if _, err := o.status.TransitionTo(Accepted); err != nil {
		return err
	}

	accepted := *o.proposedPrice
	o.price = accepted
	o.proposedPrice = nil
	o.appendUpdate(Accepted, now, fmt.Sprintf("Orderer accepted price: %s", o.currency.Format(accepted)))
	return nil
}

// UpdateStatus moves the order along the transition table. DeterminePrice and
// Accepted are reached through ProposePrice and AcceptProposedPrice only.
// An empty note is replaced with a generated one.
func (o *Order) UpdateStatus(next Status, note string, now time.Time) error {
	if next == DeterminePrice || next == Accepted {
		return fmt.Errorf("%w: %s is set by price negotiation", ErrIllegalStatusTransition, next)
	}
	if _, err := o.status.TransitionTo(next); err != nil {
		return err
	}

	note = strings.TrimSpace(note)
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", next)
	}
	o.appendUpdate(next, now, note)
	return nil
}

// UpdateLocation stores the live position of the shipment with a server
// assigned timestamp. The status is not changed.
func (o *Order) UpdateLocation(location kernel.Location, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	tracked := location.TrackedAt(now)
	o.currentLocation = &tracked
	return nil
}

// PullEvents returns the events raised since the last call and forgets them.
func (o *Order) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

// MarkPersisted stores the version assigned by the repository.
func (o *Order) MarkPersisted(version int64) {
	o.version = version
}

func (o *Order) appendUpdate(next Status, now time.Time, note string) {
	ts := now.UTC()
	if n := len(o.statusUpdates); n > 0 {
		if last := o.statusUpdates[n-1].timestamp; !ts.After(last) {
			ts = last.Add(time.Nanosecond)
		}
	}

	previous := o.status
	o.status = next
	o.statusUpdates = append(o.statusUpdates, StatusUpdate{status: next, timestamp: ts, note: note})
	o.events = append(o.events, StatusChanged{
		EventID:       kernel.NewUUID(),
		OrderID:       o.id,
		OrdererID:     o.ordererID,
		TransporterID: copyUUID(o.transporterID),
		VehicleID:     copyUUID(o.vehicleID),
		From:          previous,
		To:            next,
		Price:         o.price,
		ProposedPrice: o.ProposedPrice(),
		Currency:      o.currency,
		Note:          note,
		OccurredAt:    ts,
	})
}

func (o *Order) assign(transporterID kernel.UUID, vehicle *user.Vehicle) {
	tid := transporterID
	vid := vehicle.ID()
	o.transporterID = &tid
	o.vehicleID = &vid

	if pickup, err := o.pickup.Coordinate(); err == nil {
		o.approachDistanceKm = vehicle.Coordinate().DistanceTo(pickup)
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrdererID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ordererId", err)
	}
	o.ordererID = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setRoute(pickup, delivery kernel.Location) error {
	distance, err := pickup.DistanceTo(delivery)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("route", err)
	}
	o.pickup = pickup
	o.delivery = delivery
	o.distanceKm = distance
	return nil
}

func (o *Order) setCargo(c cargo.Cargo) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.cargo = c
	return nil
}

func (o *Order) setPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is negative or not a number", price))
	}
	o.price = price
	return nil
}

func (o *Order) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	o.currency = currency
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not greater than 0", price))
	}
	return nil
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
