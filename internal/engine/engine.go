// Package engine runs the full hora pipeline for one trading date: market
// policy, schedule, lunar calendar, predictions and per-slot status.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-hora/internal/astro"
	"github.com/litescript/ls-hora/internal/ephem"
	"github.com/litescript/ls-hora/internal/hora"
	"github.com/litescript/ls-hora/internal/jyotish"
	"github.com/litescript/ls-hora/internal/logging"
	"github.com/litescript/ls-hora/internal/market"
)

// ErrMarketClosed is returned for Saturday and Sunday trading dates.
var ErrMarketClosed = errors.New("market is closed on weekends")

// Default birth details.
const (
	DefaultBirthDate = "1984-09-06"
	DefaultBirthTime = 37 * time.Minute
)

// Inputs are the user's birth details and the date to plan.
type Inputs struct {
	BirthDate   time.Time     // Calendar date; time of day is ignored
	BirthTime   time.Duration // Offset from local midnight
	BirthPlace  string
	TradingDate time.Time
}

// DefaultInputs returns the default birth details with today's date in IST.
func DefaultInputs(now time.Time) Inputs {
	birth, _ := time.ParseInLocation("2006-01-02", DefaultBirthDate, market.IST)
	return Inputs{
		BirthDate:   birth,
		BirthTime:   DefaultBirthTime,
		BirthPlace:  jyotish.DefaultPlace,
		TradingDate: hora.Midnight(now),
	}
}

// BirthInstant combines the birth date and time in IST.
func (in Inputs) BirthInstant() time.Time {
	return hora.Midnight(in.BirthDate).Add(in.BirthTime)
}

// IndexPlan is the planner output for one index.
type IndexPlan struct {
	Index   market.Index
	Entries []market.PlanEntry
}

// Evaluation is the result of one pipeline run.
type Evaluation struct {
	Inputs   Inputs
	Now      time.Time
	Live     bool      // Trading date is today in IST
	CalcTime time.Time // Instant used for the market tithi
	Provider string

	Holiday    string // Listed NSE holiday name; the day is still scheduled
	Schedule   hora.Schedule
	Tithi      jyotish.Tithi
	BirthStar  jyotish.Nakshatra
	BirthPlace astro.Observer

	Current *hora.Slot    // Live only, nil outside trading slots
	LuckNow *jyotish.Luck // Compatibility with Current

	Predictions []market.Prediction
	Plans       []IndexPlan
	Rows        []Row
}

// Luck-now display values when there is no current slot.
const (
	LuckClosed     = "Closed"
	LuckOffMarket  = "Off-Market"
	LuckFuture     = "--"
	LuckFutureNote = "Future View"
)

// LuckSummary returns the "luck now" value and its caption.
func (e *Evaluation) LuckSummary() (value, note string) {
	switch {
	case !e.Live:
		return LuckFuture, LuckFutureNote
	case e.LuckNow == nil:
		return LuckClosed, LuckOffMarket
	default:
		return fmt.Sprintf("%d%%", e.LuckNow.Score), e.LuckNow.Display()
	}
}

// PersonLord is the ruler of the birth nakshatra.
func (e *Evaluation) PersonLord() jyotish.Planet {
	return e.BirthStar.Lord
}

// Engine evaluates trading days against an ephemeris provider.
type Engine struct {
	calc   *jyotish.Calculator
	name   string
	logger *logging.Logger
}

// New creates an engine. A nil provider selects ephem.Default and a nil
// logger discards output.
func New(p ephem.Provider, logger *logging.Logger) *Engine {
	if p == nil {
		p = ephem.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		calc:   jyotish.NewCalculator(p),
		name:   p.Name(),
		logger: logger,
	}
}

// CheckMarketDay returns ErrMarketClosed when date is a weekend. Holidays
// are not refused; Evaluate reports them in Evaluation.Holiday.
func CheckMarketDay(date time.Time) error {
	if market.IsWeekend(date) {
		return fmt.Errorf("%w: %s", ErrMarketClosed, date.In(market.IST).Format("Monday 2006-01-02"))
	}
	return nil
}

// Evaluate runs the pipeline for in at wall-clock now. Every call recomputes
// from scratch.
func (e *Engine) Evaluate(in Inputs, now time.Time) (*Evaluation, error) {
	now = now.In(market.IST)
	day := hora.Midnight(in.TradingDate)

	if err := CheckMarketDay(day); err != nil {
		return nil, err
	}

	place, err := jyotish.LookupPlace(in.BirthPlace)
	if err != nil {
		return nil, err
	}

	live := day.Equal(hora.Midnight(now))
	calcTime := now
	if !live {
		calcTime = day.Add(hora.MarketOpen)
	}

	sched, err := hora.BuildForDate(e.calc.Provider, day)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("schedule %s: sunrise %s sunset %s lord %s, %d trading slots",
		day.Format("2006-01-02"), sched.Sunrise.Format("15:04:05"), sched.Sunset.Format("15:04:05"),
		sched.DayLord, len(sched.Slots))

	star, err := e.calc.Nakshatra(in.BirthInstant(), place)
	if err != nil {
		return nil, fmt.Errorf("birth nakshatra: %w", err)
	}
	tithi, err := e.calc.Tithi(calcTime, market.NSE)
	if err != nil {
		return nil, fmt.Errorf("market tithi: %w", err)
	}

	ev := &Evaluation{
		Inputs:     in,
		Now:        now,
		Live:       live,
		CalcTime:   calcTime,
		Provider:   e.name,
		Schedule:   sched,
		Tithi:      tithi,
		BirthStar:  star,
		BirthPlace: place,
	}
	if name, ok := market.Holiday(day); ok {
		ev.Holiday = name
		e.logger.Info("%s is listed as an NSE holiday (%s)", day.Format("2006-01-02"), name)
	}

	if live {
		if slot, ok := sched.At(now); ok {
			luck := jyotish.Compatibility(star.Lord, slot.Planet)
			ev.Current = &slot
			ev.LuckNow = &luck
		}
	}

	ev.Predictions = market.PredictAll(sched.Slots, now, live)
	for _, idx := range market.Indices() {
		ev.Plans = append(ev.Plans, IndexPlan{
			Index:   idx,
			Entries: market.Plan(sched.Slots, idx, now, live),
		})
	}

	ev.Rows = make([]Row, 0, len(sched.Slots))
	for _, slot := range sched.Slots {
		luck := jyotish.Compatibility(star.Lord, slot.Planet)
		ev.Rows = append(ev.Rows, SlotStatus(slot, luck, now, live))
	}

	return ev, nil
}
