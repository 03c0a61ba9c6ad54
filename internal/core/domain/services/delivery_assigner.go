package services

import (
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/pkg/errs"
)

// DeliveryAssigner is a domain service that keeps orders and the running
// order counts of their riders consistent.
//
// Business rules:
//   - Assigning a rider counts the order against that rider
//   - Reassigning takes the order off the replaced rider's counts
//   - Delivering or cancelling an assigned order frees the rider
type DeliveryAssigner struct{}

func NewDeliveryAssigner() DeliveryAssigner {
	return DeliveryAssigner{}
}

// Assign binds next to the order. current must be the rider the order is
// assigned to right now, or nil when it has none.
func (d DeliveryAssigner) Assign(actor kernel.Actor, o *order.Order, next, current *rider.Rider, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if o.IsAssignedTo(next.ID()) && o.HoldsRider() {
		return nil
	}

	if err := d.checkCurrent(o, current); err != nil {
		return err
	}

	replaced, err := o.AssignRider(actor, next.Snapshot(), now)
	if err != nil {
		return err
	}

	if replaced != nil {
		current.DropOrder()
	}
	next.TakeOrder()
	return nil
}

// Transition changes the order status and frees the assigned rider when the
// order leaves the road. assigned may be nil for orders without a rider.
func (d DeliveryAssigner) Transition(
	actor kernel.Actor,
	o *order.Order,
	to order.Status,
	reason string,
	assigned *rider.Rider,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := d.checkCurrent(o, assigned); err != nil {
		return err
	}

	held := o.HoldsRider()
	if err := o.ChangeStatus(actor, to, reason, now); err != nil {
		return err
	}

	if held && !o.HoldsRider() {
		assigned.ReleaseOrder()
	}
	return nil
}

// Deliver completes a delivery on behalf of the assigned rider.
func (d DeliveryAssigner) Deliver(o *order.Order, r *rider.Rider, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}

	if err := o.Deliver(r.ID(), now); err != nil {
		return err
	}

	r.ReleaseOrder()
	return nil
}

// checkCurrent ensures the rider aggregate passed in matches the order's snapshot.
func (d DeliveryAssigner) checkCurrent(o *order.Order, current *rider.Rider) error {
	snap := o.Rider()
	switch {
	case snap == nil:
		return nil
	case current == nil:
		if !o.HoldsRider() {
			return nil
		}
		return errs.NewValueIsRequiredError("assigned rider")
	case !current.ID().IsEqual(snap.ID):
		return errs.NewValueIsInvalidErrorWithCause("assigned rider",
			fmt.Errorf("order is assigned to %s, got %s", snap.ID, current.ID()))
	default:
		return nil
	}
}
