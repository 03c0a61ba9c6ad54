package rider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

var (
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrPasswordIsRequired    = errs.NewValueIsRequiredError("password")
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

	// ErrInvalidCredentials is returned by CheckPassword on a mismatch.
	ErrInvalidCredentials = errors.New("invalid phone or password")
)

// Rider is a delivery rider. Orders reference a rider by id and keep a
// snapshot of the name and phone taken at assignment time.
//
// Business rules:
//   - Rider must have a valid UUID, non-empty name and E.164 phone
//   - The password is kept only as a bcrypt hash
//   - Active orders never drop below zero and never exceed total orders
type Rider struct {
	id           kernel.UUID
	name         string
	phone        kernel.Phone
	passwordHash string

	// totalOrders counts every order ever assigned, activeOrders the ones not yet finished
	totalOrders  int
	activeOrders int
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewRider registers a rider, hashing the plain-text password.
func NewRider(id kernel.UUID, name string, phone kernel.Phone, password string, now time.Time) (*Rider, error) {
	r := &Rider{
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setPhone(phone),
		r.setPassword(password),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider rebuilds a rider from storage.
func RestoreRider(
	id kernel.UUID,
	name string,
	phone kernel.Phone,
	passwordHash string,
	totalOrders int,
	activeOrders int,
	createdAt time.Time,
) (*Rider, error) {
	r := &Rider{
		passwordHash: passwordHash,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setPhone(phone),
		r.setCounts(totalOrders, activeOrders),
	); err != nil {
		return nil, err
	}

	if passwordHash == "" {
		return nil, ErrPasswordIsRequired
	}

	return r, nil
}

func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Rider) ID() kernel.UUID {
	return r.id
}

func (r *Rider) Name() string {
	return r.name
}

func (r *Rider) Phone() kernel.Phone {
	return r.phone
}

func (r *Rider) PasswordHash() string {
	return r.passwordHash
}

func (r *Rider) TotalOrders() int {
	return r.totalOrders
}

func (r *Rider) ActiveOrders() int {
	return r.activeOrders
}

func (r *Rider) CreatedAt() time.Time {
	return r.createdAt
}

// CheckPassword returns ErrInvalidCredentials when password does not match.
func (r *Rider) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(r.passwordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Snapshot is the copy of the rider stored on an order at assignment.
func (r *Rider) Snapshot() order.RiderSnapshot {
	return order.RiderSnapshot{
		ID:    r.id,
		Name:  r.name,
		Phone: r.phone.String(),
	}
}

// TakeOrder records a new assignment.
func (r *Rider) TakeOrder() {
	r.totalOrders++
	r.activeOrders++
}

// ReleaseOrder records that an assigned order was delivered or cancelled.
func (r *Rider) ReleaseOrder() {
	if r.activeOrders > 0 {
		r.activeOrders--
	}
}

// DropOrder undoes TakeOrder when the order is reassigned to someone else.
func (r *Rider) DropOrder() {
	r.ReleaseOrder()
	if r.totalOrders > 0 {
		r.totalOrders--
	}
}

// ResetActiveOrders overwrites the active count with a recount from orders.
func (r *Rider) ResetActiveOrders(active int) error {
	return r.setCounts(max(r.totalOrders, active), active)
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	r.phone = phone
	return nil
}

func (r *Rider) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}
	if len(password) < MinPasswordLength {
		return errs.NewValueIsInvalidErrorWithCause("password",
			fmt.Errorf("must be at least %d characters", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("password", err)
	}
	r.passwordHash = string(hash)
	return nil
}

func (r *Rider) setCounts(total, active int) error {
	if active < 0 || total < 0 {
		return errs.NewValueIsOutOfRangeError("orders count", fmt.Sprintf("%d/%d", active, total), 0, "unbounded")
	}
	if active > total {
		return errs.NewValueIsInvalidErrorWithCause("orders count",
			fmt.Errorf("active %d exceeds total %d", active, total))
	}
	r.totalOrders = total
	r.activeOrders = active
	return nil
}
