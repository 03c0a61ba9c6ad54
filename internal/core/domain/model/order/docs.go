// Package order provides the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: the aggregate root holding the line item and address snapshots,
//     the order number, the assigned rider snapshot and the status history
//   - Status: the lifecycle states and the per delivery method transitions
//   - Item, DeliveryAddress, RiderSnapshot: values copied onto the order
//
// Key business rules:
//   - Delivery orders go Pending -> Accepted -> OutForDelivery -> Delivered
//   - Pickup orders go Pending -> Accepted -> ReadyForPickup -> Completed
//   - Any non-terminal order may be Cancelled, with a reason
//   - Customers may only cancel their own pending or accepted orders
//   - Riders may only deliver orders assigned to them
//   - Totals are recomputed from items and never trusted from storage
package order
