// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - TripDispatcher: A domain service that binds packed orders to a new trip
//     with all-or-nothing eligibility checking
//   - StockGate: An advisory check of order lines against known stock levels
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
