// Package guard provides a constructor guard for command and value objects.
// Embedding a ConstructorGuard lets a type detect whether it was created through
// its designated constructor or left as a zero value, so handlers can reject
// improperly built inputs before any state is touched.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is provided
// and the object was not created through its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as constructed through its factory function.
// The zero value fails validation, which catches direct struct literals.
//
// Example:
//
//	type CreateOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewCreateOrderCommand(orderID kernel.UUID) (CreateOrderCommand, error) {
//	    return CreateOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c CreateOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was properly constructed, the provided
// validationError otherwise. A nil validationError falls back to
// ErrDefaultConstructorGuard so validation never silently passes.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
