package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies the kind of actor requesting a workflow operation.
// Transition legality is a function of (status, action, role); the role is
// always passed in explicitly by the caller, never read from ambient state.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin may perform every workflow operation.
	RoleAdmin

	// RoleDistributorAdmin manages order intake: confirm, pack, cancel.
	RoleDistributorAdmin

	// RoleDispatcher manages delivery: dispatch-adjacent transitions and trips.
	RoleDispatcher

	// RoleAgent is a read-only field role; it may not perform transitions.
	RoleAgent
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:          "Unknown",
		RoleAdmin:            "Admin",
		RoleDistributorAdmin: "DistributorAdmin",
		RoleDispatcher:       "Dispatcher",
		RoleAgent:            "Agent",
	}
}

// RoleFromString parses a role from its wire representation.
// Accepts the exact names used by the identity service: "admin",
// "distributor_admin", "dispatcher", "agent".
func RoleFromString(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "distributor_admin":
		return RoleDistributorAdmin, nil
	case "dispatcher":
		return RoleDispatcher, nil
	case "agent":
		return RoleAgent, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%q is not a known role", s),
		)
	}
}

// Validate checks that the role is one of the defined actor roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", int(r)),
		)
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", int(r)),
		)
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}
