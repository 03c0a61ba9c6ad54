package order

import (
	"fmt"
	"slices"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Delivery orders:
//
//	Pending ──> Accepted ──> OutForDelivery ──> Delivered
//
// Pickup orders:
//
//	Pending ──> Accepted ──> ReadyForPickup ──> Completed
//
// Cancelled is reachable from every non-terminal status. Delivered, Completed
// and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Pending
	Accepted
	OutForDelivery
	Delivered
	ReadyForPickup
	Completed
	Cancelled
)

// getStatusStrings returns the persisted and wire names of every status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Accepted:       "accepted",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		ReadyForPickup: "ready_for_pickup",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

// getTransitions returns the forward edges of the state machine per delivery
// method. Cancellation edges are derived from IsTerminal and are not listed.
func getTransitions() map[DeliveryMethod]map[Status][]Status {
	return map[DeliveryMethod]map[Status][]Status{
		MethodDelivery: {
			Pending:        {Accepted},
			Accepted:       {OutForDelivery},
			OutForDelivery: {Delivered},
		},
		MethodPickup: {
			Pending:        {Accepted},
			Accepted:       {ReadyForPickup},
			ReadyForPickup: {Completed},
		},
	}
}

// ParseStatus maps a persisted status name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Completed || s == Cancelled
}

// Next returns the statuses an order with the given delivery method may move
// to from s, ignoring who is asking.
func (s Status) Next(method DeliveryMethod) []Status {
	if s.Validate() != nil || s.IsTerminal() {
		return nil
	}

	next := slices.Clone(getTransitions()[method][s])
	return append(next, Cancelled)
}

// CanTransitionTo reports whether to is a legal next status for method.
func (s Status) CanTransitionTo(to Status, method DeliveryMethod) bool {
	return slices.Contains(s.Next(method), to)
}

// ValidateCanHaveRider checks the consistency between status and rider assignment.
// Orders that are out for delivery or delivered must carry a rider.
func (s Status) ValidateCanHaveRider(rider bool) error {
	if !rider && (s == OutForDelivery || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no rider", s.String()),
		)
	}
	return nil
}

// DeliveryMethod decides which branch of the state machine an order follows.
type DeliveryMethod string

const (
	MethodDelivery DeliveryMethod = "delivery"
	MethodPickup   DeliveryMethod = "pickup"
)

func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	m := DeliveryMethod(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m DeliveryMethod) Validate() error {
	if m != MethodDelivery && m != MethodPickup {
		return errs.NewValueIsInvalidErrorWithCause("delivery method", fmt.Errorf("%q is not a valid delivery method", string(m)))
	}
	return nil
}

func (m DeliveryMethod) String() string {
	return string(m)
}
