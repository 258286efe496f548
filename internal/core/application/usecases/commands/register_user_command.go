package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"
	"freight/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand adds a participant to the marketplace.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	name   string
	email  string
	phone  string
	role   user.Role

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(userID kernel.UUID, name, email, phone string, role user.Role) (RegisterUserCommand, error) {
	command := RegisterUserCommand{
		email: strings.TrimSpace(email),
		phone: strings.TrimSpace(phone),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUserID(userID),
		command.setName(name),
		role.Validate(),
	); err != nil {
		return RegisterUserCommand{}, err
	}
	command.role = role

	return command, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID { return c.userID }
func (c RegisterUserCommand) Name() string        { return c.name }
func (c RegisterUserCommand) Email() string       { return c.email }
func (c RegisterUserCommand) Phone() string       { return c.phone }
func (c RegisterUserCommand) Role() user.Role     { return c.role }

func (c *RegisterUserCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return ErrUserIDIsRequired
	}
	c.userID = userID
	return nil
}

func (c *RegisterUserCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return user.ErrNameIsRequired
	}
	c.name = name
	return nil
}
