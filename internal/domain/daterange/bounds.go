package daterange

import "time"

type BoundKind int

const (
	Inclusive BoundKind = iota
	Exclusive
	Unbounded
)

// Bound is one end of a range as a store may represent it.
type Bound struct {
	Day  time.Time
	Kind BoundKind
}

// Bounds is a range with heterogeneous end representations, e.g. Postgres's canonical [lower,upper).
type Bounds struct {
	Lower Bound
	Upper Bound
}

// NormalizeLower turns a lower bound into the first day it includes.
func NormalizeLower(b Bound) time.Time {
	if b.Kind == Exclusive {
		return AddDays(Of(b.Day), 1)
	}
	return Of(b.Day)
}

// NormalizeUpper turns an upper bound into the last day it includes.
func NormalizeUpper(b Bound) time.Time {
	if b.Kind == Exclusive {
		return AddDays(Of(b.Day), -1)
	}
	return Of(b.Day)
}

// Closed converts b into a closed Range. It reports false when b contains no
// day at all or either side is unbounded.
func (b Bounds) Closed() (Range, bool) {
	if b.Lower.Kind == Unbounded || b.Upper.Kind == Unbounded {
		return Range{}, false
	}
	start, end := NormalizeLower(b.Lower), NormalizeUpper(b.Upper)
	if start.After(end) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}
