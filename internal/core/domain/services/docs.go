// Package services provides domain services that coordinate several
// aggregates in one business operation.
//
// The package includes:
//   - DeliveryAssigner: binds riders to orders and keeps rider order counts
//     in step with order status changes
package services
