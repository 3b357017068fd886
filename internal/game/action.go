package game

import (
	"fmt"
	"strings"
)

// Action is a decision a player makes on one hand.
type Action uint8

const (
	NoAction Action = iota
	Hit
	Stay
	Double
	Split
	Surrender
)

func (a Action) String() string {
	if a > Surrender {
		return fmt.Sprintf("action(%d)", uint8(a))
	}
	return [...]string{"none", "hit", "stay", "double", "split", "surrender"}[a]
}

// ParseAction converts an action name. "stand" is accepted for stay.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit":
		return Hit, nil
	case "stay", "stand":
		return Stay, nil
	case "double":
		return Double, nil
	case "split":
		return Split, nil
	case "surrender":
		return Surrender, nil
	}
	return NoAction, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ActionSet is a set of legal actions.
type ActionSet uint8

// NewActionSet returns a set holding the given actions.
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.Add(a)
	}
	return s
}

// Add returns s with a included.
func (s ActionSet) Add(a Action) ActionSet {
	if a == NoAction || a > Surrender {
		return s
	}
	return s | 1<<a
}

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	return a != NoAction && a <= Surrender && s&(1<<a) != 0
}

// List returns the actions in the set in declaration order.
func (s ActionSet) List() []Action {
	var out []Action
	for a := Hit; a <= Surrender; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s ActionSet) String() string {
	names := make([]string, 0, 5)
	for _, a := range s.List() {
		names = append(names, a.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
