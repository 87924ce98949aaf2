// Package order provides domain entities and business logic for order
// management in the fulfillment system. It implements the Order aggregate
// root with lifecycle management, line items and computed totals.
//
// The package includes:
//   - Order: The aggregate root owning items, totals and the status lifecycle
//   - Item: A line item with add-time snapshots of sku, name and unit price
//   - Status: The order state machine from Pending through Delivered
//   - Action: Requested transitions resolved against a declarative legality table
//
// Key business rules:
//   - Transition legality is a pure function of (status, action, role)
//   - Returns require a reason; cancellations default to a placeholder reason
//   - Items are editable only while Pending; edits recompute subtotal, 12% tax and total
//   - Delivered, Returned and Cancelled are terminal
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
