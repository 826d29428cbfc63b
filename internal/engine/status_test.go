package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/litescript/ls-hora/internal/hora"
	"github.com/litescript/ls-hora/internal/jyotish"
)

var (
	lucky   = jyotish.Luck{Label: jyotish.LabelFavorable, Score: jyotish.ScoreFavorable}
	unlucky = jyotish.Luck{Label: jyotish.LabelUnfavorable, Score: jyotish.ScoreUnfavorable}
	neutral = jyotish.Luck{Label: jyotish.LabelNeutral, Score: jyotish.ScoreNeutral}
)

func slotAt(h, m int, rahu bool) hora.Slot {
	start := at(2025, 1, 7, h, m)
	return hora.Slot{Start: start, End: start.Add(55 * time.Minute), Planet: jyotish.Venus, IsRahu: rahu}
}

func TestSlotStatus(t *testing.T) {
	tests := []struct {
		name string
		slot hora.Slot
		luck jyotish.Luck
		kind StatusKind
		expl string
	}{
		{"neutral", slotAt(10, 5, false), neutral, StatusOpen, "Scalping Zone"},
		{"best", slotAt(10, 5, false), lucky, StatusBest, "High Luck with Venus"},
		{"avoid", slotAt(10, 5, false), unlucky, StatusAvoid, "Incompatible Planet"},
		{"rahu beats best", slotAt(10, 5, true), lucky, StatusRahu, "Trap Zone / High Risk"},
		{"pre-open beats rahu", slotAt(9, 10, true), lucky, StatusPreOpen, "Pre-Open / Volatility"},
		{"09:15 is in session", slotAt(9, 15, false), unlucky, StatusAvoid, "Incompatible Planet"},
		{"08:xx start is not pre-open", slotAt(8, 40, false), neutral, StatusOpen, "Scalping Zone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SlotStatus(tt.slot, tt.luck, time.Time{}, false)
			assert.Equal(t, tt.kind, r.Status.Kind)
			assert.Equal(t, tt.expl, r.Status.Explanation)
			assert.Equal(t, tt.luck, r.Luck)
			assert.False(t, r.Active)
			assert.False(t, r.Past)
		})
	}
}

func TestSlotStatus_Live(t *testing.T) {
	s := slotAt(11, 0, false)

	r := SlotStatus(s, neutral, s.Start, true)
	assert.True(t, r.Active)
	assert.False(t, r.Past)
	assert.Equal(t, "🟢 LIVE (🟢 OPEN)", r.Label())

	r = SlotStatus(s, neutral, s.End, true)
	assert.False(t, r.Active, "end is exclusive")
	assert.False(t, r.Past, "past only once now is after the end")

	r = SlotStatus(s, neutral, s.End.Add(time.Second), true)
	assert.True(t, r.Past)
	assert.Equal(t, "🟢 OPEN", r.Label())

	r = SlotStatus(s, neutral, s.Start, false)
	assert.False(t, r.Active, "only the live day has an active row")
}

func TestStatusKindString(t *testing.T) {
	assert.Equal(t, "⛔ RAHU", StatusRahu.String())
	assert.Equal(t, "🟠 PRE", StatusPreOpen.String())
	assert.Equal(t, "UNKNOWN", StatusKind(99).String())
}
