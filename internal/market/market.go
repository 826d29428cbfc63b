// Package market maps hora schedules onto index trading signals.
package market

import (
	"time"

	"github.com/litescript/ls-hora/internal/hora"
	"github.com/litescript/ls-hora/internal/jyotish"
)

// IST is Indian Standard Time.
var IST = hora.IST

// NSE is the market-timing observer.
var NSE = hora.MarketObserver

// Strategy is a trading tag and the reasoning shown with it.
type Strategy struct {
	Tag       string
	Rationale string
}

// DefaultStrategy applies when no favourable hora remains.
var DefaultStrategy = Strategy{Tag: "WAIT", Rationale: "Neutral Market"}

var strategies = map[jyotish.Planet]Strategy{
	jyotish.Jupiter: {Tag: "BUY CALL", Rationale: "Trend Expansion / Banking"},
	jyotish.Sun:     {Tag: "BUY CALL", Rationale: "Institutional Buying / PSU"},
	jyotish.Mars:    {Tag: "BUY PUT", Rationale: "Aggressive Selling / Panic"},
	jyotish.Mercury: {Tag: "SCALP BOTH", Rationale: "High Speed / Volatility"},
	jyotish.Venus:   {Tag: "AVOID", Rationale: "Rangebound / Premium Decay"},
	jyotish.Saturn:  {Tag: "SELL OPT", Rationale: "Slow Movement / Theta Decay"},
	jyotish.Moon:    {Tag: "TRAP", Rationale: "Erratic / Fake Breakouts"},
}

// StrategyFor returns the strategy for a hora ruler, or DefaultStrategy.
func StrategyFor(p jyotish.Planet) (Strategy, bool) {
	s, ok := strategies[p]
	if !ok {
		return DefaultStrategy, false
	}
	return s, true
}

// Index is a tradable index and the planets that favour or hurt it.
type Index struct {
	Name  string
	Best  []jyotish.Planet
	Worst []jyotish.Planet
}

// IsBest reports whether p favours the index.
func (i Index) IsBest(p jyotish.Planet) bool {
	return jyotish.Contains(i.Best, p)
}

// IsWorst reports whether a slot should be avoided for the index: its ruler
// is unfavourable or it touches Rahu Kaal.
func (i Index) IsWorst(s hora.Slot) bool {
	return s.IsRahu || jyotish.Contains(i.Worst, s.Planet)
}

var indices = []Index{
	{Name: "NIFTY 50", Best: []jyotish.Planet{jyotish.Jupiter, jyotish.Sun}, Worst: []jyotish.Planet{jyotish.Saturn, jyotish.Rahu}},
	{Name: "BANK NIFTY", Best: []jyotish.Planet{jyotish.Mercury, jyotish.Mars, jyotish.Jupiter}, Worst: []jyotish.Planet{jyotish.Saturn, jyotish.Venus}},
	{Name: "SENSEX", Best: []jyotish.Planet{jyotish.Sun, jyotish.Jupiter}, Worst: []jyotish.Planet{jyotish.Ketu, jyotish.Rahu}},
	{Name: "MIDCAP SEL", Best: []jyotish.Planet{jyotish.Mars, jyotish.Mercury}, Worst: []jyotish.Planet{jyotish.Saturn, jyotish.Venus}},
}

// Indices returns the tracked indices in display order.
func Indices() []Index {
	out := make([]Index, len(indices))
	for i, idx := range indices {
		out[i] = Index{
			Name:  idx.Name,
			Best:  append([]jyotish.Planet(nil), idx.Best...),
			Worst: append([]jyotish.Planet(nil), idx.Worst...),
		}
	}
	return out
}

// LookupIndex finds an index by name. Unknown names yield an Index with no
// preferences, which never matches a slot.
func LookupIndex(name string) (Index, bool) {
	for _, idx := range Indices() {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index{Name: name}, false
}

// FormatClock renders t as a 12-hour IST clock without the meridiem.
func FormatClock(t time.Time) string {
	return t.In(IST).Format("03:04")
}

// FormatSpan renders a slot as "09:03 AM - 09:58 AM".
func FormatSpan(s hora.Slot) string {
	return s.Start.In(IST).Format("03:04 PM") + " - " + s.End.In(IST).Format("03:04 PM")
}
