package ephem

import (
	"sort"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/ls-hora/internal/astro"
)

// NOAAAlmanac takes sunrise and sunset from the NOAA solar calculator
// (go-sunrise) and positions from another provider.
type NOAAAlmanac struct {
	positions Provider
}

// NewNOAAAlmanac creates an almanac that positions bodies with positions,
// or with the default analytic provider when positions is nil.
func NewNOAAAlmanac(positions Provider) *NOAAAlmanac {
	if positions == nil {
		positions = Default()
	}
	return &NOAAAlmanac{positions: positions}
}

// Name implements Provider.
func (a *NOAAAlmanac) Name() string {
	return "NOAA"
}

// Position implements Provider.
func (a *NOAAAlmanac) Position(body Body, t time.Time, obs astro.Observer) (EclipticPosition, error) {
	return a.positions.Position(body, t, obs)
}

// SunEvents implements Provider. go-sunrise works per UTC calendar day, so
// every UTC day touching the window is evaluated and the results clipped.
func (a *NOAAAlmanac) SunEvents(start, end time.Time, obs astro.Observer) ([]Event, error) {
	if !end.After(start) {
		return nil, astro.ErrInvalidSearch
	}

	s := start.UTC()
	day := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	var events []Event
	add := func(t time.Time, kind EventKind) {
		// Zero times mark polar day or night
		if t.IsZero() || t.Before(start) || !t.Before(end) {
			return
		}
		events = append(events, Event{Time: t.In(start.Location()), Kind: kind})
	}

	for !day.After(end) {
		rise, set := sunrise.SunriseSunset(obs.LatDeg, obs.LonDeg, day.Year(), day.Month(), day.Day())
		add(rise, Sunrise)
		add(set, Sunset)
		day = day.AddDate(0, 0, 1)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	return events, nil
}
