package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// FreshnessWindow is how long after a transition the order counts as freshly
// changed for notification consumers.
const FreshnessWindow = 10 * time.Second

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// StatusChange is one entry of the order's status history.
type StatusChange struct {
	From      Status
	To        Status
	ActorID   string
	ActorRole kernel.Role
	Reason    string
	At        time.Time
}

// Order is the aggregate root of the order lifecycle.
//
// Order follows these invariants:
//   - total equals the sum of effective price times quantity over its items
//   - delivery orders carry an address snapshot
//   - status only moves along the edges of its delivery method's state machine
//   - orders out for delivery or delivered always carry a rider
type Order struct {
	id      kernel.UUID
	number  string
	userID  string
	items   []Item
	total   kernel.Money
	savings kernel.Money
	method  DeliveryMethod
	address *DeliveryAddress
	status  Status

	// rider is a snapshot taken at assignment, nil until assigned
	rider        *RiderSnapshot
	cancelReason string
	createdAt    time.Time
	updatedAt    time.Time

	// version is the optimistic concurrency token as loaded from storage
	version int

	changes       []StatusChange
	isConstructed bool
}

// NewOrder creates a pending order. The number must already be allocated: no
// order exists without one.
func NewOrder(
	id kernel.UUID,
	number string,
	userID string,
	items []Item,
	method DeliveryMethod,
	address *DeliveryAddress,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		version:       1,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setUserID(userID),
		o.setItems(items),
		o.setMethod(method, address),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreData carries a persisted order back into the domain.
type RestoreData struct {
	ID           kernel.UUID
	Number       string
	UserID       string
	Items        []Item
	Total        kernel.Money
	Savings      kernel.Money
	Method       DeliveryMethod
	Address      *DeliveryAddress
	Status       Status
	Rider        *RiderSnapshot
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int
}

// RestoreOrder rebuilds an order from storage. Stored totals that drift from
// the totals recomputed from the stored items are rejected.
func RestoreOrder(data RestoreData) (*Order, error) {
	o := &Order{
		cancelReason:  data.CancelReason,
		createdAt:     data.CreatedAt,
		updatedAt:     data.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(data.ID),
		o.setNumber(data.Number),
		o.setUserID(data.UserID),
		o.setItems(data.Items),
		o.setMethod(data.Method, data.Address),
		data.Status.Validate(),
		data.Status.ValidateCanHaveRider(data.Rider != nil),
	); err != nil {
		return nil, err
	}

	if o.total != data.Total || o.savings != data.Savings {
		return nil, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf(
			"stored total %s/savings %s do not match items total %s/savings %s",
			data.Total, data.Savings, o.total, o.savings,
		))
	}

	if data.Version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version", fmt.Errorf("%d is not positive", data.Version))
	}

	if data.Rider != nil {
		if err := data.Rider.Validate(); err != nil {
			return nil, err
		}
		r := *data.Rider
		o.rider = &r
	}

	o.status = data.Status
	o.version = data.Version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number is the business-facing order number, e.g. DKN-007.
func (o *Order) Number() string {
	return o.number
}

func (o *Order) UserID() string {
	return o.userID
}

func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Savings() kernel.Money {
	return o.savings
}

func (o *Order) Method() DeliveryMethod {
	return o.method
}

// Address returns the delivery address snapshot, nil for pickup orders.
func (o *Order) Address() *DeliveryAddress {
	if o.address == nil {
		return nil
	}
	a := *o.address
	return &a
}

func (o *Order) Status() Status {
	return o.status
}

// Rider returns the assigned rider snapshot, nil when unassigned.
func (o *Order) Rider() *RiderSnapshot {
	if o.rider == nil {
		return nil
	}
	r := *o.rider
	return &r
}

func (o *Order) CancelReason() string {
	return o.cancelReason
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) Version() int {
	return o.version
}

// AdvanceVersion is called by storage once a compare-and-set write succeeded,
// so the aggregate can be written again in the same unit of work.
func (o *Order) AdvanceVersion() {
	o.version++
}

// IsFresh reports whether the last change happened within FreshnessWindow of now.
func (o *Order) IsFresh(now time.Time) bool {
	return now.Sub(o.updatedAt) <= FreshnessWindow
}

// IsAssignedTo reports whether riderID is the order's assigned rider.
func (o *Order) IsAssignedTo(riderID kernel.UUID) bool {
	return o.rider != nil && o.rider.ID.IsEqual(riderID)
}

// HoldsRider reports whether the assigned rider is still busy with this order.
func (o *Order) HoldsRider() bool {
	return o.rider != nil && !o.status.IsTerminal()
}

// Changes returns the status changes made since the order was loaded.
func (o *Order) Changes() []StatusChange {
	return slices.Clone(o.changes)
}

func (o *Order) ClearChanges() {
	o.changes = nil
}

// ChangeStatus moves the order to status to on behalf of actor.
//
// Shopkeepers and admins may make any legal move. Customers may only cancel
// their own pending or accepted orders. Riders may only deliver orders that are
// out for delivery and assigned to them. Cancelling requires a reason.
func (o *Order) ChangeStatus(actor kernel.Actor, to Status, reason string, now time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}

	if err := o.authorize(actor, to); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(to, o.method) {
		return errs.NewInvalidTransitionError(o.status.String(), to.String(), actor.Role.String(),
			fmt.Sprintf("not a legal next status for %s orders", o.method))
	}

	if to == OutForDelivery && o.rider == nil {
		return errs.NewInvalidTransitionError(o.status.String(), to.String(), actor.Role.String(), "no rider assigned")
	}

	reason = strings.TrimSpace(reason)
	if to == Cancelled && reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	o.apply(actor, to, reason, now)
	return nil
}

// Pickup is the assigned rider collecting a delivery order from the shop.
// The rider identity is checked before the status.
func (o *Order) Pickup(riderID kernel.UUID, now time.Time) error {
	if !o.IsAssignedTo(riderID) {
		return errs.NewNotAssignedError(o.id.String(), riderID.String())
	}

	if o.method != MethodDelivery || (o.status != Accepted && o.status != ReadyForPickup) {
		return errs.NewInvalidTransitionError(o.status.String(), OutForDelivery.String(), kernel.RoleRider.String(),
			"pickup requires an accepted or ready_for_pickup delivery order")
	}

	o.apply(kernel.Actor{ID: riderID.String(), Role: kernel.RoleRider}, OutForDelivery, "", now)
	return nil
}

// Deliver is the assigned rider handing the order to the customer.
func (o *Order) Deliver(riderID kernel.UUID, now time.Time) error {
	return o.ChangeStatus(kernel.Actor{ID: riderID.String(), Role: kernel.RoleRider}, Delivered, "", now)
}

// AssignRider binds a rider to a delivery order and returns the rider it
// replaced, if any. Reassignment is possible until the order leaves the shop.
func (o *Order) AssignRider(actor kernel.Actor, rider RiderSnapshot, now time.Time) (*RiderSnapshot, error) {
	if !actor.Role.IsStaff() {
		return nil, errs.NewForbiddenError("assign riders", actor.Role.String())
	}

	if err := rider.Validate(); err != nil {
		return nil, err
	}

	if o.method != MethodDelivery {
		return nil, errs.NewInvalidTransitionError(o.status.String(), o.status.String(), actor.Role.String(),
			"riders can only be assigned to delivery orders")
	}

	if o.status != Accepted && o.status != ReadyForPickup {
		return nil, errs.NewInvalidTransitionError(o.status.String(), o.status.String(), actor.Role.String(),
			"riders can only be assigned to accepted or ready_for_pickup orders")
	}

	previous := o.rider
	o.rider = &rider
	o.updatedAt = now.UTC()
	return previous, nil
}

func (o *Order) authorize(actor kernel.Actor, to Status) error {
	switch actor.Role {
	case kernel.RoleShopkeeper, kernel.RoleAdmin:
		return nil
	case kernel.RoleCustomer:
		if actor.ID != o.userID {
			return errs.NewInvalidTransitionError(o.status.String(), to.String(), actor.Role.String(),
				"customers may only cancel their own orders")
		}
		if to != Cancelled {
			return errs.NewInvalidTransitionError(o.status.String(), to.String(), actor.Role.String(),
				"customers may only cancel")
		}
		if o.status != Pending && o.status != Accepted {
			return errs.NewInvalidTransitionError(o.status.String(), to.String(), actor.Role.String(),
				"customers may only cancel pending or accepted orders")
		}
		return nil
	case kernel.RoleRider:
		riderID, err := kernel.UUIDFromString(actor.ID)
		if err != nil || !o.IsAssignedTo(riderID) {
			return errs.NewNotAssignedError(o.id.String(), actor.ID)
		}
		if o.status != OutForDelivery || to != Delivered {
			return errs.NewInvalidTransitionError(o.status.String(), to.String(), actor.Role.String(),
				"riders may only mark out_for_delivery orders as delivered")
		}
		return nil
	default:
		return errs.NewForbiddenError("change order status", actor.Role.String())
	}
}

func (o *Order) apply(actor kernel.Actor, to Status, reason string, now time.Time) {
	o.changes = append(o.changes, StatusChange{
		From:      o.status,
		To:        to,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Reason:    reason,
		At:        now.UTC(),
	})

	if to == Cancelled {
		o.cancelReason = reason
	}
	o.status = to
	o.updatedAt = now.UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	o.userID = userID
	return nil
}

// setItems copies the items and recomputes total and savings from them.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var total, savings kernel.Money
	for _, item := range items {
		if item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", errors.New("item must be created via NewItem"))
		}
		total = total.Add(item.LineTotal())
		savings = savings.Add(item.LineSavings())
	}

	o.items = slices.Clone(items)
	o.total = total
	o.savings = savings
	return nil
}

func (o *Order) setMethod(method DeliveryMethod, address *DeliveryAddress) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.method = method

	if method == MethodPickup {
		return nil
	}

	if address == nil {
		return errs.NewValueIsRequiredError("delivery address")
	}
	if err := address.Validate(); err != nil {
		return err
	}
	a := *address
	o.address = &a
	return nil
}
