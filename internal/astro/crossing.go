package astro

import (
	"errors"
	"time"
)

// Crossing is a threshold crossing of a sampled function.
type Crossing struct {
	Time   time.Time
	Rising bool // true when the function goes from below to above the threshold
}

// ErrInvalidSearch is returned for an empty window or non-positive step.
var ErrInvalidSearch = errors.New("invalid crossing search window")

// crossingPrecision is the bracket width at which bisection stops.
const crossingPrecision = 500 * time.Millisecond

// FindCrossings samples f over [start, end) every step and returns each
// threshold crossing in chronological order, refined by bisection.
func FindCrossings(f func(time.Time) float64, start, end time.Time, step time.Duration, threshold float64) ([]Crossing, error) {
	if !end.After(start) || step <= 0 {
		return nil, ErrInvalidSearch
	}

	var out []Crossing
	prevT := start
	prevV := f(start) - threshold

	for {
		t := prevT.Add(step)
		if t.After(end) {
			t = end
		}
		v := f(t) - threshold

		if (prevV <= 0 && v > 0) || (prevV > 0 && v <= 0) {
			out = append(out, Crossing{
				Time:   bisect(f, threshold, prevT, t, prevV),
				Rising: prevV <= 0,
			})
		}

		if !t.Before(end) {
			break
		}
		prevT, prevV = t, v
	}

	return out, nil
}

// bisect narrows [lo, hi] around the sign change of f-threshold.
func bisect(f func(time.Time) float64, threshold float64, lo, hi time.Time, loV float64) time.Time {
	for hi.Sub(lo) > crossingPrecision {
		mid := lo.Add(hi.Sub(lo) / 2)
		midV := f(mid) - threshold
		if (loV <= 0) == (midV <= 0) {
			lo, loV = mid, midV
		} else {
			hi = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2)
}
