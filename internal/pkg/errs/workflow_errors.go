package errs

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionConflict = errors.New("transaction conflict")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrNotAssigned         = errors.New("rider is not assigned")
	ErrForbidden           = errors.New("operation is forbidden")
	ErrSequenceAllocation  = errors.New("sequence allocation failed")
	ErrReconciliation      = errors.New("identity reconciliation failed")
)

func unwrapWithCause(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}

// TransactionConflictError reports that a concurrent writer modified the same
// resource first. It is transient: the whole unit of work may be retried.
type TransactionConflictError struct {
	Resource string
	Cause    error
}

func NewTransactionConflictError(resource string) *TransactionConflictError {
	return &TransactionConflictError{Resource: resource}
}

func NewTransactionConflictErrorWithCause(resource string, cause error) *TransactionConflictError {
	return &TransactionConflictError{Resource: resource, Cause: cause}
}

func (e *TransactionConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrTransactionConflict, e.Resource), e.Cause)
}

func (e *TransactionConflictError) Unwrap() []error {
	return unwrapWithCause(ErrTransactionConflict, e.Cause)
}

// InvalidTransitionError names the attempted and the current order status
// together with the role that attempted the change.
type InvalidTransitionError struct {
	From   string
	To     string
	Actor  string
	Reason string
}

func NewInvalidTransitionError(from, to, actor, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Actor: actor, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s is not allowed for %s", ErrInvalidTransition, e.From, e.To, e.Actor)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NotAssignedError reports a rider acting on an order bound to someone else
// (or to nobody).
type NotAssignedError struct {
	OrderID string
	RiderID string
}

func NewNotAssignedError(orderID, riderID string) *NotAssignedError {
	return &NotAssignedError{OrderID: orderID, RiderID: riderID}
}

func (e *NotAssignedError) Error() string {
	return fmt.Sprintf("%s: rider %s is not assigned to order %s", ErrNotAssigned, e.RiderID, e.OrderID)
}

func (e *NotAssignedError) Unwrap() error {
	return ErrNotAssigned
}

// ForbiddenError reports an operation the actor's role does not permit.
type ForbiddenError struct {
	Action string
	Role   string
}

func NewForbiddenError(action, role string) *ForbiddenError {
	return &ForbiddenError{Action: action, Role: role}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Role, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// SequenceAllocationError reports that the counter identified by Counter/Key
// could not be advanced. When Cause is a conflict the error stays retryable.
type SequenceAllocationError struct {
	Counter string
	Key     string
	Cause   error
}

func NewSequenceAllocationError(counter, key string, cause error) *SequenceAllocationError {
	return &SequenceAllocationError{Counter: counter, Key: key, Cause: cause}
}

func (e *SequenceAllocationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s/%s", ErrSequenceAllocation, e.Counter, e.Key), e.Cause)
}

func (e *SequenceAllocationError) Unwrap() []error {
	return unwrapWithCause(ErrSequenceAllocation, e.Cause)
}

// ReconciliationError reports a store failure while mapping a verified phone
// number to an application user.
type ReconciliationError struct {
	Cause error
}

func NewReconciliationError(cause error) *ReconciliationError {
	return &ReconciliationError{Cause: cause}
}

func (e *ReconciliationError) Error() string {
	return withCause(ErrReconciliation.Error(), e.Cause)
}

func (e *ReconciliationError) Unwrap() []error {
	return unwrapWithCause(ErrReconciliation, e.Cause)
}

// IsTransient reports whether err is worth retrying as a whole unit of work.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransactionConflict)
}
