// Package report renders evaluations for headless use: JSON snapshots and
// plain-text tables.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/market"
	"github.com/litescript/ls-hora/internal/news"
)

// SnapshotExport is the JSON-serializable representation of an evaluation.
type SnapshotExport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Date        string             `json:"date"`
	Live        bool               `json:"live"`
	CalcTime    time.Time          `json:"calc_time"`
	Provider    string             `json:"provider"`
	Holiday     string             `json:"holiday,omitempty"`
	Sunrise     time.Time          `json:"sunrise"`
	Sunset      time.Time          `json:"sunset"`
	DayLord     string             `json:"day_lord"`
	Rahu        WindowExport       `json:"rahu_kaal"`
	Tithi       TithiExport        `json:"tithi"`
	Birth       BirthExport        `json:"birth"`
	LuckNow     LuckNowExport      `json:"luck_now"`
	Current     *SlotExport        `json:"current_hora,omitempty"`
	Predictions []PredictionExport `json:"predictions"`
	Slots       []SlotExport       `json:"slots"`
	Plans       []PlanExport       `json:"plans"`
	News        []news.Item        `json:"news,omitempty"`
}

// WindowExport is a time interval.
type WindowExport struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TithiExport is the market day's lunar day.
type TithiExport struct {
	Index   int    `json:"index"`
	Display string `json:"display"`
	Paksha  string `json:"paksha"`
}

// BirthExport describes the birth star.
type BirthExport struct {
	Place     string  `json:"place"`
	Nakshatra string  `json:"nakshatra"`
	Lord      string  `json:"lord"`
	Padam     int     `json:"padam"`
	MoonLon   float64 `json:"moon_sidereal_deg"`
}

// LuckNowExport is the "luck now" metric.
type LuckNowExport struct {
	Value string `json:"value"`
	Note  string `json:"note"`
}

// SlotExport is one schedule row.
type SlotExport struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Planet      string    `json:"planet"`
	Rahu        bool      `json:"rahu"`
	Luck        string    `json:"luck"`
	Score       int       `json:"score"`
	Status      string    `json:"status"`
	Explanation string    `json:"explanation"`
	Active      bool      `json:"active,omitempty"`
	Past        bool      `json:"past,omitempty"`
}

// PredictionExport is one index card.
type PredictionExport struct {
	Index     string     `json:"index"`
	NextBest  *time.Time `json:"next_best"`
	Avoid     *time.Time `json:"avoid"`
	Strategy  string     `json:"strategy"`
	Rationale string     `json:"rationale"`
}

// PlanExport is one index's planner.
type PlanExport struct {
	Index   string            `json:"index"`
	Entries []PlanEntryExport `json:"entries"`
}

// PlanEntryExport is one planner row.
type PlanEntryExport struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Planet string    `json:"planet"`
	Signal string    `json:"signal"`
	Action string    `json:"action"`
	Logic  string    `json:"logic"`
}

// ExportSnapshot converts an evaluation to an exportable format.
func ExportSnapshot(ev *engine.Evaluation, items []news.Item, generatedAt time.Time) *SnapshotExport {
	if ev == nil {
		return &SnapshotExport{GeneratedAt: generatedAt, News: items}
	}

	sched := ev.Schedule
	value, note := ev.LuckSummary()

	export := &SnapshotExport{
		GeneratedAt: generatedAt,
		Date:        sched.Date.Format("2006-01-02"),
		Live:        ev.Live,
		CalcTime:    ev.CalcTime,
		Provider:    ev.Provider,
		Holiday:     ev.Holiday,
		Sunrise:     sched.Sunrise,
		Sunset:      sched.Sunset,
		DayLord:     sched.DayLord.String(),
		Rahu:        WindowExport{Start: sched.Rahu.Start, End: sched.Rahu.End},
		Tithi: TithiExport{
			Index:   ev.Tithi.Index,
			Display: ev.Tithi.String(),
			Paksha:  ev.Tithi.Paksha,
		},
		Birth: BirthExport{
			Place:     ev.BirthPlace.Name,
			Nakshatra: ev.BirthStar.Name,
			Lord:      ev.BirthStar.Lord.String(),
			Padam:     ev.BirthStar.Padam,
			MoonLon:   ev.BirthStar.Longitude,
		},
		LuckNow: LuckNowExport{Value: value, Note: note},
		News:    items,
	}

	for _, p := range ev.Predictions {
		export.Predictions = append(export.Predictions, PredictionExport{
			Index:     p.Index,
			NextBest:  p.Best,
			Avoid:     p.Worst,
			Strategy:  p.Strategy.Tag,
			Rationale: p.Strategy.Rationale,
		})
	}

	for _, r := range ev.Rows {
		s := slotExport(r)
		export.Slots = append(export.Slots, s)
		if r.Active {
			export.Current = &s
		}
	}

	for _, p := range ev.Plans {
		pe := PlanExport{Index: p.Index.Name, Entries: []PlanEntryExport{}}
		for _, e := range p.Entries {
			pe.Entries = append(pe.Entries, planEntryExport(e))
		}
		export.Plans = append(export.Plans, pe)
	}

	return export
}

func slotExport(r engine.Row) SlotExport {
	return SlotExport{
		Start:       r.Slot.Start,
		End:         r.Slot.End,
		Planet:      r.Slot.Planet.String(),
		Rahu:        r.Slot.IsRahu,
		Luck:        r.Luck.Display(),
		Score:       r.Luck.Score,
		Status:      r.Label(),
		Explanation: r.Status.Explanation,
		Active:      r.Active,
		Past:        r.Past,
	}
}

func planEntryExport(e market.PlanEntry) PlanEntryExport {
	return PlanEntryExport{
		Start:  e.Slot.Start,
		End:    e.Slot.End,
		Planet: e.Slot.Planet.String(),
		Signal: e.Signal.String(),
		Action: e.Action,
		Logic:  e.Logic,
	}
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
