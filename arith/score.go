// Package arith implements the pure numeric helpers the score propagator
// builds on: an explicit-absent score type, and average/min/max/revert/equal
// operators that treat "absent" as its own value rather than silently
// coercing it to 0.0.
package arith

import "math"

// Tolerance is the equality tolerance used throughout the engine to decide
// whether a recomputed score actually changed.
const Tolerance = 1e-6

// Score is a value in [0,1] that may be Absent. It is a struct rather than
// a *float64 so it is copied by value like any other numeric type, and so
// that "absent" can never be confused with a nil-pointer bug.
type Score struct {
	Value   float64
	Present bool
}

// Absent is the zero value of Score; named for readability at call sites.
var Absent = Score{}

// Of returns a present score holding v.
func Of(v float64) Score { return Score{Value: v, Present: true} }

// Equal reports whether a and b are the same score within Tolerance.
// Two absent scores are equal; an absent and a present score are never equal.
func Equal(a, b Score) bool {
	if a.Present != b.Present {
		return false
	}
	if !a.Present {
		return true
	}
	return math.Abs(a.Value-b.Value) < Tolerance
}

// Revert computes 1-x, propagating absence.
func Revert(x Score) Score {
	if !x.Present {
		return Absent
	}
	return Of(1 - x.Value)
}

// Avg returns the average of the present values among a and b, ignoring
// whichever is absent; it is itself absent only when both are absent.
func Avg(a, b Score) Score {
	switch {
	case a.Present && b.Present:
		return Of((a.Value + b.Value) / 2)
	case a.Present:
		return a
	case b.Present:
		return b
	default:
		return Absent
	}
}

// Max returns the largest present value among vs, ignoring absent entries;
// absent if every entry is absent (used for OR child_positive and for
// child_negative at any node).
func Max(vs ...Score) Score {
	var best Score
	for _, v := range vs {
		if !v.Present {
			continue
		}
		if !best.Present || v.Value > best.Value {
			best = v
		}
	}
	return best
}

// Min returns the smallest present value among vs, ignoring absent entries;
// absent if every entry is absent (used for AND child_positive).
func Min(vs ...Score) Score {
	var best Score
	for _, v := range vs {
		if !v.Present {
			continue
		}
		if !best.Present || v.Value < best.Value {
			best = v
		}
	}
	return best
}

// Clamp reports whether v lies in [0,1]. No operation in this module calls
// it: leaf scores passed to opinionop.CreateOR and PatchOpinion are stored
// without a range check.
func Clamp(v float64) bool {
	return v >= 0 && v <= 1
}
