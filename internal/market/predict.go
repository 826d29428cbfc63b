package market

import (
	"time"

	"github.com/litescript/ls-hora/internal/hora"
)

// NoneLabel is shown when no slot matches.
const NoneLabel = "None"

// futureLookBack is subtracted from each slot's start when the schedule is
// not for today, so every slot passes the "still ahead" test.
const futureLookBack = time.Minute

// Prediction is the next favourable and unfavourable hora for an index.
type Prediction struct {
	Index    string
	Best     *time.Time // Start of the next favourable slot, nil when none
	Worst    *time.Time // Start of the next slot to avoid, nil when none
	Strategy Strategy
}

// BestLabel renders Best as a clock or NoneLabel.
func (p Prediction) BestLabel() string {
	return clockOrNone(p.Best)
}

// WorstLabel renders Worst as a clock or NoneLabel.
func (p Prediction) WorstLabel() string {
	return clockOrNone(p.Worst)
}

func clockOrNone(t *time.Time) string {
	if t == nil {
		return NoneLabel
	}
	return FormatClock(*t)
}

// cutoff is the instant a slot must end after to still count.
func cutoff(s hora.Slot, ref time.Time, live bool) time.Time {
	if live {
		return ref
	}
	return s.Start.Add(-futureLookBack)
}

// Predict scans slots in order and returns the next slot favouring idx with
// its strategy, and independently the next slot to avoid.
func Predict(slots []hora.Slot, idx Index, ref time.Time, live bool) Prediction {
	p := Prediction{Index: idx.Name, Strategy: DefaultStrategy}

	for _, s := range slots {
		if !s.End.After(cutoff(s, ref, live)) {
			continue
		}
		if idx.IsBest(s.Planet) {
			start := s.Start
			p.Best = &start
			p.Strategy, _ = StrategyFor(s.Planet)
			break
		}
	}

	for _, s := range slots {
		if !s.End.After(cutoff(s, ref, live)) {
			continue
		}
		if idx.IsWorst(s) {
			start := s.Start
			p.Worst = &start
			break
		}
	}

	return p
}

// PredictAll runs Predict for every tracked index.
func PredictAll(slots []hora.Slot, ref time.Time, live bool) []Prediction {
	all := Indices()
	out := make([]Prediction, 0, len(all))
	for _, idx := range all {
		out = append(out, Predict(slots, idx, ref, live))
	}
	return out
}
