package trip

import "fmt"

// Action is a requested trip transition, named by its wire value.
type Action string

const (
	// ActionStart marks the trip as departed.
	ActionStart Action = "start"

	// ActionMarkInProgress marks deliveries as underway.
	ActionMarkInProgress Action = "in_progress"

	// ActionComplete finishes the trip once every stop is settled.
	ActionComplete Action = "complete"

	// ActionCancel abandons the trip and reverts undelivered stops.
	ActionCancel Action = "cancel"
)

// ActionFromString parses a wire action name. Unknown names return an error
// so malformed requests fail before any state is read.
func ActionFromString(s string) (Action, error) {
	switch action := Action(s); action {
	case ActionStart, ActionMarkInProgress, ActionComplete, ActionCancel:
		return action, nil
	default:
		return "", fmt.Errorf("%q is not a known trip action", s)
	}
}
