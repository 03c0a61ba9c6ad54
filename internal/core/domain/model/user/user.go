package user

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrIDIsRequired         = errs.NewValueIsRequiredError("user id")
	ErrDisplayNameRequired  = errs.NewValueIsRequiredError("display name")
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
)

// User is an application user. The id is the auth id that first created the
// account; the phone number is the business key and is unique across users.
type User struct {
	id               string
	phone            kernel.Phone
	displayName      string
	role             kernel.Role
	profileCompleted bool
	defaultAddressID *kernel.UUID
	createdAt        time.Time
	updatedAt        time.Time
	guard            guard.ConstructorGuard
}

// NewUser creates a customer account.
func NewUser(id string, phone kernel.Phone, displayName string, now time.Time) (*User, error) {
	u := &User{
		role:      kernel.RoleCustomer,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setPhone(phone),
		u.setDisplayName(displayName),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a user from storage. An empty display name is allowed
// for accounts created before names were generated.
func RestoreUser(
	id string,
	phone kernel.Phone,
	displayName string,
	role kernel.Role,
	profileCompleted bool,
	defaultAddressID *kernel.UUID,
	createdAt, updatedAt time.Time,
) (*User, error) {
	u := &User{
		displayName:      displayName,
		profileCompleted: profileCompleted,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setPhone(phone),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	if defaultAddressID != nil {
		if err := defaultAddressID.Validate(); err != nil {
			return nil, err
		}
		a := *defaultAddressID
		u.defaultAddressID = &a
	}

	u.role = role
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Phone() kernel.Phone {
	return u.phone
}

func (u *User) DisplayName() string {
	return u.displayName
}

func (u *User) Role() kernel.Role {
	return u.role
}

func (u *User) ProfileCompleted() bool {
	return u.profileCompleted
}

func (u *User) DefaultAddressID() *kernel.UUID {
	if u.defaultAddressID == nil {
		return nil
	}
	a := *u.defaultAddressID
	return &a
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Actor returns the principal this user acts as.
func (u *User) Actor() kernel.Actor {
	return kernel.Actor{ID: u.id, Role: u.role}
}

// ClaimName stores name when the user has none yet and reports whether it did.
func (u *User) ClaimName(name string, now time.Time) bool {
	name = strings.TrimSpace(name)
	if u.displayName != "" || name == "" {
		return false
	}
	u.displayName = name
	u.updatedAt = now.UTC()
	return true
}

// UpdateProfile renames the user and marks the profile completed.
func (u *User) UpdateProfile(displayName string, now time.Time) error {
	if err := u.setDisplayName(displayName); err != nil {
		return err
	}
	u.profileCompleted = true
	u.updatedAt = now.UTC()
	return nil
}

func (u *User) ChangeRole(role kernel.Role, now time.Time) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	u.updatedAt = now.UTC()
	return nil
}

// SetDefaultAddress points the user at addressID, or clears it when nil.
func (u *User) SetDefaultAddress(addressID *kernel.UUID, now time.Time) {
	if addressID == nil {
		u.defaultAddressID = nil
	} else {
		a := *addressID
		u.defaultAddressID = &a
	}
	u.updatedAt = now.UTC()
}

func (u *User) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDIsRequired
	}
	u.id = id
	return nil
}

func (u *User) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	u.phone = phone
	return nil
}

func (u *User) setDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrDisplayNameRequired
	}
	u.displayName = name
	return nil
}
