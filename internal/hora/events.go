package hora

import (
	"fmt"
	"time"

	"github.com/litescript/ls-hora/internal/astro"
	"github.com/litescript/ls-hora/internal/ephem"
)

// SunEvents returns the first sunrise and first sunset between local
// midnight of date and the next midnight, as seen from obs. Either is nil
// when the provider finds no such event.
func SunEvents(p ephem.Provider, date time.Time, obs astro.Observer) (rise, set *time.Time, err error) {
	start := Midnight(date)
	events, err := p.SunEvents(start, start.AddDate(0, 0, 1), obs)
	if err != nil {
		return nil, nil, fmt.Errorf("sun events for %s: %w", start.Format("2006-01-02"), err)
	}

	for _, e := range events {
		t := e.Time.In(IST)
		switch {
		case e.Kind == ephem.Sunrise && rise == nil:
			rise = &t
		case e.Kind == ephem.Sunset && set == nil:
			set = &t
		}
	}
	return rise, set, nil
}

// BuildForDate computes the market observer's sun events for date and builds
// the schedule from them.
func BuildForDate(p ephem.Provider, date time.Time) (Schedule, error) {
	rise, set, err := SunEvents(p, date, MarketObserver)
	if err != nil {
		return Schedule{}, err
	}
	if rise == nil || set == nil {
		return Schedule{}, fmt.Errorf("%w: no sunrise/sunset on %s", ErrUnschedulable, Midnight(date).Format("2006-01-02"))
	}

	s, err := Build(date, *rise, *set)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: sunset precedes sunrise on %s", err, Midnight(date).Format("2006-01-02"))
	}
	return s, nil
}
