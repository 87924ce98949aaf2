package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var ErrReleaseScheduledOrdersCommandIsNotConstructed = errors.New(
	"ReleaseScheduledOrdersCommand must be created via NewReleaseScheduledOrdersCommand constructor",
)

// ReleaseScheduledOrdersCommand represents a request to promote every
// pending order whose scheduled fulfillment time has come due. Issued by the
// background scheduler, not by API callers.
type ReleaseScheduledOrdersCommand struct { //nolint:recvcheck //using for validation
	until time.Time

	guard guard.ConstructorGuard
}

// NewReleaseScheduledOrdersCommand creates a command to promote orders
// scheduled at or before the given moment.
func NewReleaseScheduledOrdersCommand(until time.Time) (ReleaseScheduledOrdersCommand, error) {
	if until.IsZero() {
		return ReleaseScheduledOrdersCommand{}, errors.New("until must not be zero")
	}

	return ReleaseScheduledOrdersCommand{
		until: until,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseScheduledOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReleaseScheduledOrdersCommandIsNotConstructed)
}

// Until returns the cutoff moment.
func (c ReleaseScheduledOrdersCommand) Until() time.Time {
	return c.until
}
