// Package trip provides domain entities and business logic for delivery trip
// management in the fulfillment system. A trip groups dispatched orders into
// a single run handled by one dispatcher and vehicle.
//
// The package includes:
//   - Trip: The aggregate root owning the stop list and the trip lifecycle
//   - Assignment: A stop binding one order to the trip with a sequence number
//   - Status: The trip state machine from Created through Completed
//
// Key business rules:
//   - Stops are sequenced contiguously from 1 in selection order
//   - Completion requires every active stop's order to be terminal
//   - Cancellation voids pre-delivery stops and reports their orders for revert
//   - Only Admin and Dispatcher roles act on trips
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package trip
