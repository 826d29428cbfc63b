package market

import (
	"fmt"
	"time"

	"github.com/litescript/ls-hora/internal/hora"
)

// Signal classifies a planner row.
type Signal int

const (
	SignalHighProbability Signal = iota
	SignalDanger
)

// String returns the signal banner.
func (s Signal) String() string {
	switch s {
	case SignalHighProbability:
		return "🌟 HIGH PROBABILITY"
	case SignalDanger:
		return "🛑 DANGER ZONE"
	default:
		return "UNKNOWN"
	}
}

// NoTradingAction is the action for danger rows.
const NoTradingAction = "⛔ NO TRADING"

// PlanEntry is one actionable slot for an index.
type PlanEntry struct {
	Slot   hora.Slot
	Signal Signal
	Action string
	Logic  string
}

// Plan lists the slots worth acting on for idx: favourable rulers outside
// Rahu Kaal, and slots to stay out of. Neutral slots are omitted. On a live
// day, slots that ended before now are skipped.
func Plan(slots []hora.Slot, idx Index, now time.Time, live bool) []PlanEntry {
	var out []PlanEntry
	for _, s := range slots {
		if live && s.End.Before(now) {
			continue
		}

		switch {
		case idx.IsBest(s.Planet) && !s.IsRahu:
			strat, _ := StrategyFor(s.Planet)
			out = append(out, PlanEntry{
				Slot:   s,
				Signal: SignalHighProbability,
				Action: "✅ " + strat.Tag,
				Logic:  fmt.Sprintf("%s is Strong for %s", s.Planet, idx.Name),
			})
		case idx.IsWorst(s):
			logic := fmt.Sprintf("%s is Weak for %s", s.Planet, idx.Name)
			if s.IsRahu {
				logic = "Rahu Kaal (Traps)"
			}
			out = append(out, PlanEntry{
				Slot:   s,
				Signal: SignalDanger,
				Action: NoTradingAction,
				Logic:  logic,
			})
		}
	}
	return out
}
