package ephem

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-hora/internal/astro"
)

var (
	ist    = time.FixedZone("IST", 5*3600+1800)
	mumbai = astro.Observer{LatDeg: 19.0760, LonDeg: 72.8777, Name: "Mumbai"}
)

func TestAnalyticPosition_SunAtEquinox(t *testing.T) {
	p := NewAnalyticProvider()

	// March equinox 2025: 09:01 UTC
	pos, err := p.Position(BodySun, time.Date(2025, 3, 20, 9, 1, 0, 0, time.UTC), mumbai)
	require.NoError(t, err)

	lon := pos.LonDeg
	if lon > 180 {
		lon -= 360
	}
	assert.InDelta(t, 0, lon, 0.05)
	assert.InDelta(t, 0, pos.LatDeg, 0.01)
	assert.InDelta(t, 0.996, pos.DistKm/astro.AU, 0.002)
}

func TestAnalyticPosition_Moon(t *testing.T) {
	p := NewAnalyticProvider()
	tm := time.Date(2025, 1, 6, 9, 15, 0, 0, ist)

	pos, err := p.Position(BodyMoon, tm, mumbai)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, pos.LonDeg, 0.0)
	assert.Less(t, pos.LonDeg, 360.0)
	assert.Less(t, math.Abs(pos.LatDeg), 5.5)
	assert.InDelta(t, 380000, pos.DistKm, 30000)
	assert.Equal(t, tm, pos.Time)
}

func TestAnalyticPosition_UnknownBody(t *testing.T) {
	_, err := NewAnalyticProvider().Position(Body(499), time.Now(), mumbai)
	assert.True(t, errors.Is(err, ErrUnknownBody))
}

func TestAnalyticSunEvents_Mumbai(t *testing.T) {
	p := NewAnalyticProvider()
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, ist)

	events, err := p.SunEvents(start, start.AddDate(0, 0, 1), mumbai)
	require.NoError(t, err)
	require.Len(t, events, 2)

	rise, set := events[0], events[1]
	assert.Equal(t, Sunrise, rise.Kind)
	assert.Equal(t, Sunset, set.Kind)

	// Early January in Mumbai: sunrise ~07:13, sunset ~18:16 IST
	assert.True(t, rise.Time.After(time.Date(2025, 1, 6, 7, 5, 0, 0, ist)), "sunrise %v too early", rise.Time)
	assert.True(t, rise.Time.Before(time.Date(2025, 1, 6, 7, 25, 0, 0, ist)), "sunrise %v too late", rise.Time)
	assert.True(t, set.Time.After(time.Date(2025, 1, 6, 18, 5, 0, 0, ist)), "sunset %v too early", set.Time)
	assert.True(t, set.Time.Before(time.Date(2025, 1, 6, 18, 25, 0, 0, ist)), "sunset %v too late", set.Time)

	assert.Equal(t, ist, rise.Time.Location())
}

func TestAnalyticSunEvents_AgreesWithNOAA(t *testing.T) {
	analytic := NewAnalyticProvider()
	noaa := NewNOAAAlmanac(nil)

	dates := []time.Time{
		time.Date(2024, 3, 20, 0, 0, 0, 0, ist),
		time.Date(2024, 6, 21, 0, 0, 0, 0, ist),
		time.Date(2024, 9, 23, 0, 0, 0, 0, ist),
		time.Date(2024, 12, 21, 0, 0, 0, 0, ist),
	}

	for _, start := range dates {
		t.Run(start.Format("2006-01-02"), func(t *testing.T) {
			end := start.AddDate(0, 0, 1)

			a, err := analytic.SunEvents(start, end, mumbai)
			require.NoError(t, err)
			n, err := noaa.SunEvents(start, end, mumbai)
			require.NoError(t, err)

			require.Len(t, a, 2)
			require.Len(t, n, 2)
			for i := range a {
				assert.Equal(t, n[i].Kind, a[i].Kind)
				diff := a[i].Time.Sub(n[i].Time)
				assert.Less(t, diff.Abs(), 3*time.Minute, "%s differs by %v", a[i].Kind, diff)
			}
		})
	}
}

func TestAnalyticSunEvents_PolarNight(t *testing.T) {
	svalbard := astro.Observer{LatDeg: 78.22, LonDeg: 15.65}
	start := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)

	events, err := NewAnalyticProvider().SunEvents(start, start.AddDate(0, 0, 1), svalbard)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAnalyticSunEvents_InvalidWindow(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, ist)
	_, err := NewAnalyticProvider().SunEvents(start, start, mumbai)
	assert.ErrorIs(t, err, astro.ErrInvalidSearch)
}
