// Package errs provides standardized error types for the storefront application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Value errors describe malformed input and all match ErrValidation:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//
// Workflow errors describe why a business operation was refused:
//   - ObjectNotFoundError: an aggregate could not be loaded
//   - InvalidTransitionError: an order status change is not allowed (permanent)
//   - NotAssignedError: a rider acted on an order that is not theirs (permanent)
//   - ForbiddenError: the actor's role may not perform the operation (permanent)
//   - TransactionConflictError: a concurrent writer won the race (transient)
//   - SequenceAllocationError: an order number could not be allocated
//   - ReconciliationError: the phone-to-user lookup failed (transient)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Messages never contain internal identifiers beyond what the caller supplied,
// so they are safe to show to end users.
package errs
