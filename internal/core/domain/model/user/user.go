package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// Domain errors for user operations.
var (
	// ErrNameIsRequired is returned when a user is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrOnlyTransporterOwnsVehicles is returned when a vehicle is added to an orderer.
	ErrOnlyTransporterOwnsVehicles = errors.New("only transporters can own vehicles")
	// ErrVehicleAlreadyExists is returned when a vehicle id is registered twice for the same owner.
	ErrVehicleAlreadyExists = errors.New("vehicle already exists")
	// ErrVehicleNotFound is returned when the user does not own the requested vehicle.
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// User is a marketplace participant and the aggregate root for its fleet.
//
// Business rules:
//   - A user has a valid UUID, a non-empty name and a role
//   - Only transporters own vehicles
//   - Vehicle ids are unique within the user
//
// Example usage:
//
//	u, err := NewUser(kernel.NewUUID(), "ACME Logistics", "ops@acme.test", "", Transporter)
//	if err != nil {
//	    // Handle construction error
//	}
//	err = u.AddVehicle(vehicle)
type User struct {
	id       kernel.UUID
	name     string
	email    string
	phone    string
	role     Role
	vehicles []*Vehicle
	guard    guard.ConstructorGuard
}

// NewUser registers a user without vehicles. Email and phone are optional;
// an email must be a valid address when given.
func NewUser(id kernel.UUID, name, email, phone string, role Role) (*User, error) {
	return RestoreUser(id, name, email, phone, role, nil)
}

// RestoreUser reconstructs a User from persistent storage together with its fleet.
func RestoreUser(id kernel.UUID, name, email, phone string, role Role, vehicles []*Vehicle) (*User, error) {
	u := &User{
		phone: strings.TrimSpace(phone),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	for _, v := range vehicles {
		if err := u.AddVehicle(v); err != nil {
			return nil, err
		}
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares users by identifier.
func (u *User) IsEqual(other *User) bool {
	if other == nil {
		return false
	}
	return u.id.IsEqual(other.id)
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Name() string    { return u.name }
func (u *User) Email() string   { return u.email }
func (u *User) Phone() string   { return u.phone }
func (u *User) Role() Role      { return u.role }

func (u *User) IsTransporter() bool {
	return u.role == Transporter
}

// Vehicles returns a copy of the fleet in registration order.
func (u *User) Vehicles() []*Vehicle {
	out := make([]*Vehicle, len(u.vehicles))
	copy(out, u.vehicles)
	return out
}

// AddVehicle attaches a vehicle to a transporter.
//
// Returns ErrOnlyTransporterOwnsVehicles for orderers and ErrVehicleAlreadyExists
// when the id is already part of the fleet.
func (u *User) AddVehicle(v *Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if !u.IsTransporter() {
		return ErrOnlyTransporterOwnsVehicles
	}
	if _, err := u.FindVehicle(v.ID()); err == nil {
		return fmt.Errorf("%w: %s", ErrVehicleAlreadyExists, v.ID())
	}

	u.vehicles = append(u.vehicles, v)
	return nil
}

// FindVehicle returns the owned vehicle with the given id.
func (u *User) FindVehicle(id kernel.UUID) (*Vehicle, error) {
	for _, v := range u.vehicles {
		if v.ID().IsEqual(id) {
			return v, nil
		}
	}
	return nil, ErrVehicleNotFound
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		u.email = ""
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
