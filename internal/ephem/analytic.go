package ephem

import (
	"fmt"
	"time"

	"github.com/litescript/ls-hora/internal/astro"
)

// eventSearchStep is the solar altitude sampling interval. The Sun moves
// about 2.5° in altitude in ten minutes, so a day never has two crossings
// inside one step.
const eventSearchStep = 10 * time.Minute

// AnalyticProvider computes positions from the low-precision series in
// package astro. It needs no network and never fails for known bodies.
type AnalyticProvider struct {
	step time.Duration
}

// NewAnalyticProvider creates an analytic provider.
func NewAnalyticProvider() *AnalyticProvider {
	return &AnalyticProvider{step: eventSearchStep}
}

// Name implements Provider.
func (p *AnalyticProvider) Name() string {
	return "Analytic"
}

// Position implements Provider.
func (p *AnalyticProvider) Position(body Body, t time.Time, obs astro.Observer) (EclipticPosition, error) {
	var geo astro.EclipticPoint
	switch body {
	case BodySun:
		geo = astro.SunEcliptic(t)
	case BodyMoon:
		geo = astro.MoonEcliptic(t)
	default:
		return EclipticPosition{}, fmt.Errorf("%w: %d", ErrUnknownBody, int(body))
	}

	topo := astro.Topocentric(geo, obs, t)
	return EclipticPosition{
		Time:   t,
		LonDeg: topo.LonDeg,
		LatDeg: topo.LatDeg,
		DistKm: topo.DistKm,
	}, nil
}

// SunEvents implements Provider by searching solar altitude for crossings
// of the standard rise/set altitude.
func (p *AnalyticProvider) SunEvents(start, end time.Time, obs astro.Observer) ([]Event, error) {
	altitude := func(t time.Time) float64 {
		return astro.SunAltitude(obs, t)
	}

	crossings, err := astro.FindCrossings(altitude, start, end, p.step, astro.SunAltitudeAtRiseSet)
	if err != nil {
		return nil, fmt.Errorf("sun event search: %w", err)
	}

	events := make([]Event, 0, len(crossings))
	for _, c := range crossings {
		kind := Sunset
		if c.Rising {
			kind = Sunrise
		}
		events = append(events, Event{Time: c.Time.In(start.Location()), Kind: kind})
	}
	return events, nil
}
