// Package phase defines the three animation states of the hero tile.
package phase

import (
	"fmt"
	"strings"
)

// Phase is one of CHAOS, ROUTES or STACK.
type Phase int

const (
	Chaos Phase = iota
	Routes
	Stack
)

// All lists the phases in cycle order.
var All = []Phase{Chaos, Routes, Stack}

// Next returns the phase that follows p in the cycle.
func (p Phase) Next() Phase {
	switch p {
	case Chaos:
		return Routes
	case Routes:
		return Stack
	default:
		return Chaos
	}
}

// Valid reports whether p is one of the enumerated phases.
func (p Phase) Valid() bool {
	return p >= Chaos && p <= Stack
}

func (p Phase) String() string {
	switch p {
	case Chaos:
		return "CHAOS"
	case Routes:
		return "ROUTES"
	case Stack:
		return "STACK"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// FriendlyName is the label shown in the header indicator.
func (p Phase) FriendlyName() string {
	switch p {
	case Chaos:
		return "Chaos"
	case Routes:
		return "Mapping"
	case Stack:
		return "The Stack"
	default:
		return p.String()
	}
}

// ShowsRoutes reports whether connection paths are drawn during p.
func (p Phase) ShowsRoutes() bool {
	return p == Chaos || p == Routes
}

// Parse accepts a phase name, case-insensitively. "mapping" is accepted as
// an alias for ROUTES.
func Parse(value string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "chaos":
		return Chaos, nil
	case "routes", "mapping":
		return Routes, nil
	case "stack":
		return Stack, nil
	}
	return Chaos, fmt.Errorf("phase: unknown phase %q", value)
}
