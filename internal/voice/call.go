package voice

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// State is the phase of a phone call
type State int

const (
	Ringing State = iota
	Recording
	Processing
	Speaking
	AwaitingDigit
	Ended
)

func (s State) String() string {
	switch s {
	case Ringing:
		return "ringing"
	case Recording:
		return "recording"
	case Processing:
		return "processing"
	case Speaking:
		return "speaking"
	case AwaitingDigit:
		return "awaiting_digit"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var transitions = map[State][]State{
	Ringing:       {Recording},
	Recording:     {Processing, Ended},
	Processing:    {Speaking, Ended},
	Speaking:      {AwaitingDigit, Ended},
	AwaitingDigit: {Speaking, Recording, Ended},
}

// ErrInvalidTransition is returned when a webhook does not fit the call state
var ErrInvalidTransition = errors.New("invalid call state transition")

// CanTransition reports whether a call may move from s to next
func (s State) CanTransition(next State) bool {
	return slices.Contains(transitions[s], next)
}

// Call is the state kept per call SID between webhooks
type Call struct {
	SID        string
	State      State
	LastAnswer string
	UpdatedAt  time.Time
}

// advance moves the call through the given states in order
func (c *Call) advance(states ...State) error {
	for _, next := range states {
		if !c.State.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.State, next)
		}
		c.State = next
	}
	c.UpdatedAt = time.Now()
	return nil
}
