package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/user"
	"freight/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// GetUserOrdersQuery lists the orders of a user, newest first.
//
// The role narrows the list to the orders the user placed (orderer) or
// carries (transporter). The empty role returns both.
type GetUserOrdersQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

func NewGetUserOrdersQuery(userID kernel.UUID, role user.Role) (GetUserOrdersQuery, error) {
	var roleErr error
	if role != "" {
		roleErr = role.Validate()
	}

	var idErr error
	if userID.Validate() != nil {
		idErr = ErrUserIDIsRequired
	}

	if err := errors.Join(idErr, roleErr); err != nil {
		return GetUserOrdersQuery{}, err
	}

	return GetUserOrdersQuery{userID: userID, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

func (q GetUserOrdersQuery) UserID() kernel.UUID { return q.userID }
func (q GetUserOrdersQuery) Role() user.Role     { return q.role }
