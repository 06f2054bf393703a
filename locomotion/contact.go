package locomotion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/starstruck/gravity"
)

type ContactKind int

const (
	ContactBegin ContactKind = iota + 1
	ContactEnd
)

func (k ContactKind) String() string {
	switch k {
	case ContactBegin:
		return "begin"
	case ContactEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ContactEvent is one begin/end report from the physics engine between a
// character's feet and a planet. Point is the world-space contact point.
type ContactEvent struct {
	Kind   ContactKind
	Planet *gravity.Planet
	Point  cp.Vector
}

// TieBreak decides which planet wins when several begin contacts reach an
// airborne character in the same step.
type TieBreak int

const (
	// TieBreakFirstContact accepts the first begin event in arrival order.
	TieBreakFirstContact TieBreak = iota
	// TieBreakNearestSurface picks the planet whose surface is closest to
	// the character, falling back to arrival order on equal distance.
	TieBreakNearestSurface
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakFirstContact:
		return "first"
	case TieBreakNearestSurface:
		return "nearest"
	default:
		return "unknown"
	}
}

// ParseTieBreak maps a config string to a TieBreak.
func ParseTieBreak(s string) (TieBreak, bool) {
	switch s {
	case "", "first":
		return TieBreakFirstContact, true
	case "nearest":
		return TieBreakNearestSurface, true
	default:
		return TieBreakFirstContact, false
	}
}
