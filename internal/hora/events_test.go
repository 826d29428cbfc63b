package hora

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-hora/internal/astro"
	"github.com/litescript/ls-hora/internal/ephem"
	"github.com/litescript/ls-hora/internal/jyotish"
)

// scriptedProvider returns canned sun events and records the query.
type scriptedProvider struct {
	events []ephem.Event
	err    error

	gotStart, gotEnd time.Time
	gotObs           astro.Observer
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Position(ephem.Body, time.Time, astro.Observer) (ephem.EclipticPosition, error) {
	return ephem.EclipticPosition{}, nil
}

func (p *scriptedProvider) SunEvents(start, end time.Time, obs astro.Observer) ([]ephem.Event, error) {
	p.gotStart, p.gotEnd, p.gotObs = start, end, obs
	return p.events, p.err
}

func TestSunEvents_FirstOfEach(t *testing.T) {
	day := at(2025, 1, 6, 0, 0, 0)
	p := &scriptedProvider{events: []ephem.Event{
		{Time: day.Add(7 * time.Hour), Kind: ephem.Sunrise},
		{Time: day.Add(18 * time.Hour), Kind: ephem.Sunset},
		{Time: day.Add(23 * time.Hour), Kind: ephem.Sunrise},
	}}

	rise, set, err := SunEvents(p, day.Add(13*time.Hour), MarketObserver)
	require.NoError(t, err)
	require.NotNil(t, rise)
	require.NotNil(t, set)
	assert.True(t, rise.Equal(day.Add(7*time.Hour)))
	assert.True(t, set.Equal(day.Add(18*time.Hour)))

	assert.Equal(t, day, p.gotStart)
	assert.Equal(t, day.AddDate(0, 0, 1), p.gotEnd)
	assert.Equal(t, MarketObserver, p.gotObs)
}

func TestSunEvents_Missing(t *testing.T) {
	day := at(2025, 6, 21, 0, 0, 0)
	p := &scriptedProvider{events: []ephem.Event{
		{Time: day.Add(20 * time.Hour), Kind: ephem.Sunset},
	}}

	rise, set, err := SunEvents(p, day, MarketObserver)
	require.NoError(t, err)
	assert.Nil(t, rise)
	require.NotNil(t, set)
}

func TestSunEvents_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := SunEvents(&scriptedProvider{err: boom}, at(2025, 1, 6, 0, 0, 0), MarketObserver)
	assert.ErrorIs(t, err, boom)
}

func TestBuildForDate_Unschedulable(t *testing.T) {
	_, err := BuildForDate(&scriptedProvider{}, at(2025, 1, 6, 9, 15, 0))
	assert.ErrorIs(t, err, ErrUnschedulable)

	// A sunset before the first sunrise cannot be partitioned either
	day := at(2025, 1, 6, 0, 0, 0)
	p := &scriptedProvider{events: []ephem.Event{
		{Time: day.Add(1 * time.Hour), Kind: ephem.Sunset},
		{Time: day.Add(22 * time.Hour), Kind: ephem.Sunrise},
	}}
	_, err = BuildForDate(p, day)
	assert.ErrorIs(t, err, ErrUnschedulable)
}

func TestBuildForDate_Mumbai(t *testing.T) {
	monday := at(2025, 1, 6, 9, 15, 0)

	s, err := BuildForDate(ephem.Default(), monday)
	require.NoError(t, err)

	assert.Equal(t, jyotish.Moon, s.DayLord)
	assert.Equal(t, at(2025, 1, 6, 0, 0, 0), s.Date)
	require.Len(t, s.Full, SlotsPerDay)
	require.NotEmpty(t, s.Slots)

	// Mumbai in early January: sunrise a little after 07:00 IST
	assert.Equal(t, 7, s.Sunrise.Hour())
	assert.Equal(t, 18, s.Sunset.Hour())

	// Monday Rahu Kaal is the first eighth of the day
	assert.True(t, s.Rahu.Start.Equal(s.Sunrise))
	assert.True(t, s.Full[0].IsRahu)

	win := TradingWindow(monday)
	for _, slot := range s.Slots {
		assert.True(t, win.Overlaps(slot.Start, slot.End))
	}
}

func TestBuildForDate_AlmanacsAgree(t *testing.T) {
	date := at(2024, 6, 19, 0, 0, 0)

	a, err := BuildForDate(ephem.Default(), date)
	require.NoError(t, err)
	n, err := BuildForDate(ephem.NewNOAAAlmanac(nil), date)
	require.NoError(t, err)

	require.Equal(t, len(a.Slots), len(n.Slots))
	for i := range a.Slots {
		assert.Equal(t, a.Slots[i].Planet, n.Slots[i].Planet)
		assert.Less(t, a.Slots[i].Start.Sub(n.Slots[i].Start).Abs(), 3*time.Minute)
	}
}
