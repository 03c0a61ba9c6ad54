package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Role is the kind of principal acting on the system.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleShopkeeper Role = "shopkeeper"
	RoleRider      Role = "rider"
	RoleAdmin      Role = "admin"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleShopkeeper, RoleRider, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// IsStaff reports whether the role runs the shop (shopkeeper or admin).
func (r Role) IsStaff() bool {
	return r == RoleShopkeeper || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated principal behind a command: a user id (or rider
// id for riders) plus the role the session was minted with.
type Actor struct {
	ID   string
	Role Role
}

func NewActor(id string, role Role) (Actor, error) {
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}
