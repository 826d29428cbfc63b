// Package hora partitions a trading day's daylight into planetary hours and
// marks the Rahu Kaal window.
package hora

import (
	"errors"
	"time"

	"github.com/litescript/ls-hora/internal/astro"
	"github.com/litescript/ls-hora/internal/jyotish"
)

// IST is Indian Standard Time. A fixed zone needs no tzdata.
var IST = time.FixedZone("IST", 5*3600+1800)

// MarketObserver is the NSE site in Mumbai. Market timing always uses it,
// whatever the user's own location.
var MarketObserver = astro.Observer{Name: "NSE Mumbai", LatDeg: 19.0760, LonDeg: 72.8777}

// SlotsPerDay is the number of horas between sunrise and sunset.
const SlotsPerDay = 12

// rahuParts is the number of equal daylight parts Rahu Kaal is chosen from.
const rahuParts = 8

// Trading window offsets from local midnight.
const (
	PreOpen     = 9 * time.Hour
	MarketOpen  = 9*time.Hour + 15*time.Minute
	MarketClose = 15*time.Hour + 30*time.Minute
)

// ErrUnschedulable is returned when a day has no usable sunrise/sunset pair.
var ErrUnschedulable = errors.New("unschedulable day")

// rahuSegments gives the 1-based eighth of daylight ruled by Rahu.
var rahuSegments = map[time.Weekday]int{
	time.Monday:    1,
	time.Tuesday:   6,
	time.Wednesday: 4,
	time.Thursday:  5,
	time.Friday:    3,
	time.Saturday:  2,
	time.Sunday:    7,
}

// Window is a half-open time interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t is in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Overlaps reports whether [start, end) shares any instant with w.
// Intervals that only touch do not overlap.
func (w Window) Overlaps(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}

// Slot is one planetary hour.
type Slot struct {
	Start  time.Time
	End    time.Time
	Planet jyotish.Planet
	IsRahu bool
}

// Duration returns the slot length.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Contains reports whether t is in [Start, End).
func (s Slot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Window returns the slot as a Window.
func (s Slot) Window() Window {
	return Window{Start: s.Start, End: s.End}
}

// Phase classifies a slot relative to the market session.
type Phase int

const (
	PhaseSession Phase = iota
	PhasePreOpen
)

// Schedule is one day's hora partition.
type Schedule struct {
	Date    time.Time // Local midnight in IST
	Sunrise time.Time
	Sunset  time.Time
	DayLord jyotish.Planet
	Rahu    Window
	Full    []Slot // All twelve horas, sunrise to sunset
	Slots   []Slot // Horas touching the trading window
}

// At returns the trading slot containing t.
func (s Schedule) At(t time.Time) (Slot, bool) {
	for _, slot := range s.Slots {
		if slot.Contains(t) {
			return slot, true
		}
	}
	return Slot{}, false
}

// Phase reports whether slot starts in the pre-open auction (09:00-09:14).
func (s Schedule) Phase(slot Slot) Phase {
	return slot.Phase()
}

// Phase reports whether the slot starts in the pre-open auction.
func (s Slot) Phase() Phase {
	st := s.Start.In(IST)
	if st.Hour() == 9 && st.Minute() < 15 {
		return PhasePreOpen
	}
	return PhaseSession
}

// TradingWindow returns [09:00, 15:30) IST on date's calendar day.
func TradingWindow(date time.Time) Window {
	day := Midnight(date)
	return Window{Start: day.Add(PreOpen), End: day.Add(MarketClose)}
}

// Midnight returns the start of t's calendar day in IST.
func Midnight(t time.Time) time.Time {
	t = t.In(IST)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, IST)
}

// RahuKaal returns the Rahu Kaal window for a weekday's daylight span.
func RahuKaal(day time.Weekday, sunrise, sunset time.Time) Window {
	part := sunset.Sub(sunrise) / rahuParts
	seg := rahuSegments[day]
	start := sunrise.Add(time.Duration(seg-1) * part)
	return Window{Start: start.In(IST), End: start.Add(part).In(IST)}
}

// Build partitions [sunrise, sunset] of date into twelve horas starting with
// the day lord. The last hora ends exactly at sunset.
func Build(date, sunrise, sunset time.Time) (Schedule, error) {
	if !sunset.After(sunrise) {
		return Schedule{}, ErrUnschedulable
	}

	day := Midnight(date)
	sunrise, sunset = sunrise.In(IST), sunset.In(IST)
	lord := jyotish.DayLord(day.Weekday())
	rahu := RahuKaal(day.Weekday(), sunrise, sunset)
	trading := TradingWindow(day)

	length := sunset.Sub(sunrise) / SlotsPerDay
	full := make([]Slot, 0, SlotsPerDay)
	var kept []Slot

	start := sunrise
	for i := 0; i < SlotsPerDay; i++ {
		end := start.Add(length)
		if i == SlotsPerDay-1 {
			end = sunset
		}

		slot := Slot{
			Start:  start,
			End:    end,
			Planet: jyotish.HoraPlanet(lord, i),
			IsRahu: rahu.Overlaps(start, end),
		}
		full = append(full, slot)
		if trading.Overlaps(start, end) {
			kept = append(kept, slot)
		}
		start = end
	}

	return Schedule{
		Date:    day,
		Sunrise: sunrise,
		Sunset:  sunset,
		DayLord: lord,
		Rahu:    rahu,
		Full:    full,
		Slots:   kept,
	}, nil
}
