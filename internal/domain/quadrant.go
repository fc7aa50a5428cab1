package domain

import "fmt"

// Quadrant identifies one cell of the Eisenhower Matrix.
type Quadrant int

// The four quadrants, numbered the way clients address them.
const (
	QuadrantDoFirst   Quadrant = 1 // urgent and important
	QuadrantSchedule  Quadrant = 2 // urgent, not important
	QuadrantDelegate  Quadrant = 3 // important, not urgent
	QuadrantEliminate Quadrant = 4 // neither
)

// AllQuadrants returns the quadrants in ascending order.
func AllQuadrants() []Quadrant {
	return []Quadrant{QuadrantDoFirst, QuadrantSchedule, QuadrantDelegate, QuadrantEliminate}
}

// QuadrantFor classifies a pair of urgent/important flags.
func QuadrantFor(urgent, important bool) Quadrant {
	switch {
	case urgent && important:
		return QuadrantDoFirst
	case urgent:
		return QuadrantSchedule
	case important:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

// ParseQuadrant converts a raw integer into a Quadrant.
// Returns ErrInvalidQuadrant for anything outside 1-4.
func ParseQuadrant(n int) (Quadrant, error) {
	q := Quadrant(n)
	if !q.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuadrant, n)
	}
	return q, nil
}

// Valid reports whether q is one of the four quadrants.
func (q Quadrant) Valid() bool {
	return q >= QuadrantDoFirst && q <= QuadrantEliminate
}

// Flags returns the urgent/important pair that classifies into q.
// It is the inverse of QuadrantFor. Invalid quadrants return false, false.
func (q Quadrant) Flags() (urgent, important bool) {
	switch q {
	case QuadrantDoFirst:
		return true, true
	case QuadrantSchedule:
		return true, false
	case QuadrantDelegate:
		return false, true
	default:
		return false, false
	}
}

// Label returns the human-readable action name for q.
func (q Quadrant) Label() string {
	switch q {
	case QuadrantDoFirst:
		return "Do First"
	case QuadrantSchedule:
		return "Schedule"
	case QuadrantDelegate:
		return "Delegate"
	case QuadrantEliminate:
		return "Eliminate"
	default:
		return "Unknown"
	}
}

// String implements fmt.Stringer.
func (q Quadrant) String() string {
	return fmt.Sprintf("%d (%s)", int(q), q.Label())
}
