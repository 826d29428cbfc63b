package ephem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-hora/internal/astro"
)

func TestNOAAAlmanac_ClipsToWindow(t *testing.T) {
	a := NewNOAAAlmanac(nil)
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, ist)

	events, err := a.SunEvents(start, start.AddDate(0, 0, 2), mumbai)
	require.NoError(t, err)
	require.Len(t, events, 4)

	kinds := []EventKind{Sunrise, Sunset, Sunrise, Sunset}
	for i, e := range events {
		assert.Equal(t, kinds[i], e.Kind)
		assert.False(t, e.Time.Before(start))
		if i > 0 {
			assert.True(t, e.Time.After(events[i-1].Time))
		}
	}
}

func TestNOAAAlmanac_PolarDay(t *testing.T) {
	svalbard := astro.Observer{LatDeg: 78.22, LonDeg: 15.65}
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	events, err := NewNOAAAlmanac(nil).SunEvents(start, start.AddDate(0, 0, 1), svalbard)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNOAAAlmanac_DelegatesPosition(t *testing.T) {
	tm := time.Date(2025, 1, 6, 4, 0, 0, 0, time.UTC)

	got, err := NewNOAAAlmanac(nil).Position(BodyMoon, tm, mumbai)
	require.NoError(t, err)
	want, err := Default().Position(BodyMoon, tm, mumbai)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, "NOAA", NewNOAAAlmanac(nil).Name())
}

func TestNOAAAlmanac_InvalidWindow(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, ist)
	_, err := NewNOAAAlmanac(nil).SunEvents(start, start.Add(-time.Hour), mumbai)
	assert.ErrorIs(t, err, astro.ErrInvalidSearch)
}
