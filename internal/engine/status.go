package engine

import (
	"fmt"
	"time"

	"github.com/litescript/ls-hora/internal/hora"
	"github.com/litescript/ls-hora/internal/jyotish"
)

// StatusKind is the trading status of a schedule row.
type StatusKind int

const (
	StatusOpen StatusKind = iota
	StatusBest
	StatusAvoid
	StatusRahu
	StatusPreOpen
)

var statusLabels = map[StatusKind]string{
	StatusOpen:    "🟢 OPEN",
	StatusBest:    "🌟 BEST",
	StatusAvoid:   "🛑 AVOID",
	StatusRahu:    "⛔ RAHU",
	StatusPreOpen: "🟠 PRE",
}

// String returns the status badge.
func (k StatusKind) String() string {
	if s, ok := statusLabels[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Status is a row's badge and explanation.
type Status struct {
	Kind        StatusKind
	Explanation string
}

// Row is one schedule slot with the person's luck and trading status.
type Row struct {
	Slot   hora.Slot
	Luck   jyotish.Luck
	Status Status
	Active bool // Live day and now is inside the slot
	Past   bool // Live day and the slot has ended
}

// Label returns the status badge, wrapped as LIVE for the active slot.
func (r Row) Label() string {
	if r.Active {
		return fmt.Sprintf("🟢 LIVE (%s)", r.Status.Kind)
	}
	return r.Status.Kind.String()
}

// RahuMark is the Rahu column text.
func (r Row) RahuMark() string {
	if r.Slot.IsRahu {
		return "💀 YES"
	}
	return "-"
}

// SlotStatus classifies a slot. Luck sets the base status; Rahu Kaal then
// overrides it, and the pre-open auction overrides both.
func SlotStatus(slot hora.Slot, luck jyotish.Luck, now time.Time, live bool) Row {
	st := Status{Kind: StatusOpen, Explanation: "Scalping Zone"}

	switch luck.Score {
	case jyotish.ScoreFavorable:
		st = Status{Kind: StatusBest, Explanation: fmt.Sprintf("High Luck with %s", slot.Planet)}
	case jyotish.ScoreUnfavorable:
		st = Status{Kind: StatusAvoid, Explanation: "Incompatible Planet"}
	}

	if slot.IsRahu {
		st = Status{Kind: StatusRahu, Explanation: "Trap Zone / High Risk"}
	}
	if slot.Phase() == hora.PhasePreOpen {
		st = Status{Kind: StatusPreOpen, Explanation: "Pre-Open / Volatility"}
	}

	row := Row{Slot: slot, Luck: luck, Status: st}
	if live {
		row.Active = slot.Contains(now)
		row.Past = now.After(slot.End)
	}
	return row
}
