// Package kernel provides the shared value objects of the storefront domain.
//
// The package includes:
//   - UUID: identifiers for orders, riders and addresses
//   - Phone: an E.164 phone number, the business key of a user
//   - Money: amounts in paise
//   - Coordinates: an optional geographic point on an address
//   - BusinessClock: derives business-local day keys for order numbering
//   - Role and Actor: who is performing a command
//
// Value objects are immutable; constructors validate and the zero value of
// each guarded type fails Validate.
package kernel
