package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/market"
	"github.com/litescript/ls-hora/internal/news"
)

const ruleWidth = 90

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
}

// Title returns the view heading, e.g. "TODAY (06 Jan 2025)".
func Title(ev *engine.Evaluation) string {
	prefix := "FUTURE"
	if ev.Live {
		prefix = "TODAY"
	}
	return fmt.Sprintf("%s (%s)", prefix, ev.Schedule.Date.Format("02 Jan 2006"))
}

// WriteSummary writes the index signals, birth details and schedule table.
func WriteSummary(w io.Writer, ev *engine.Evaluation) {
	fmt.Fprintf(w, "Astro-Scalping Signals: %s\n", Title(ev))
	if ev.Live {
		fmt.Fprintf(w, "Current Time: %s | Tithi: %s\n", ev.Now.In(market.IST).Format("03:04 PM"), ev.Tithi)
	} else {
		fmt.Fprintf(w, "Forecast for: %s | Tithi: %s\n", ev.Schedule.Date.Format("2006-01-02"), ev.Tithi)
	}
	rule(w)

	fmt.Fprintf(w, "%s %s %s %s\n", pad("Index", 12), pad("Next Best", 10), pad("Avoid", 10), "Strategy")
	for _, p := range ev.Predictions {
		fmt.Fprintf(w, "%s %s %s %s (%s)\n",
			pad(p.Index, 12), pad(p.BestLabel(), 10), pad(p.WorstLabel(), 10),
			p.Strategy.Tag, p.Strategy.Rationale)
	}
	rule(w)

	value, note := ev.LuckSummary()
	fmt.Fprintf(w, "Day Lord: %s | Birth Star: %s (Padam %d) | Lord: %s | Luck Now: %s (%s)\n",
		ev.Schedule.DayLord, ev.BirthStar.Name, ev.BirthStar.Padam, ev.BirthStar.Lord, value, note)
	fmt.Fprintf(w, "Sunrise %s | Sunset %s | Rahu Kaal %s - %s | %s\n",
		ev.Schedule.Sunrise.Format("03:04 PM"), ev.Schedule.Sunset.Format("03:04 PM"),
		ev.Schedule.Rahu.Start.Format("03:04 PM"), ev.Schedule.Rahu.End.Format("03:04 PM"),
		ev.Provider)
	if ev.Holiday != "" {
		fmt.Fprintf(w, "NSE Holiday: %s (market may be closed)\n", ev.Holiday)
	}
	rule(w)

	WriteSchedule(w, ev)
}

// WriteSchedule writes the trading-window schedule rows.
func WriteSchedule(w io.Writer, ev *engine.Evaluation) {
	if len(ev.Rows) == 0 {
		fmt.Fprintln(w, "No horas in the trading window")
		return
	}

	fmt.Fprintf(w, "%s %s %s %s %s %s\n",
		pad("Time (IST)", 21), pad("Hora", 8), pad("Rahu?", 7),
		pad("Luck ("+ev.BirthStar.Lord.String()+")", 14), pad("Status", 20), "Explanation")
	rule(w)

	for _, r := range ev.Rows {
		marker := " "
		if r.Past {
			marker = "·"
		}
		fmt.Fprintf(w, "%s%s %s %s %s %s %s\n",
			marker,
			pad(market.FormatSpan(r.Slot), 20),
			pad(r.Slot.Planet.String(), 8),
			pad(r.RahuMark(), 7),
			pad(r.Luck.Display(), 14),
			pad(r.Label(), 20),
			r.Status.Explanation,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d horas\n", len(ev.Rows))
}

// WritePlanner writes the planner for the named index, or every index when
// name is empty.
func WritePlanner(w io.Writer, ev *engine.Evaluation, name string) error {
	found := false
	for _, p := range ev.Plans {
		if name != "" && !strings.EqualFold(p.Index.Name, name) {
			continue
		}
		found = true

		fmt.Fprintf(w, "Planner: %s\n", p.Index.Name)
		rule(w)
		if len(p.Entries) == 0 {
			fmt.Fprintln(w, "No high-probability or danger slots remaining")
			fmt.Fprintln(w)
			continue
		}
		for _, e := range p.Entries {
			fmt.Fprintf(w, "%s %s %s %s\n",
				pad(market.FormatSpan(e.Slot), 20),
				pad(e.Signal.String(), 22),
				pad(e.Action, 16),
				e.Logic,
			)
		}
		fmt.Fprintln(w)
	}

	if !found {
		return fmt.Errorf("unknown index %q", name)
	}
	return nil
}

// WriteNews writes headlines as "source: title" lines.
func WriteNews(w io.Writer, items []news.Item) {
	fmt.Fprintln(w, "Real-Time Headlines")
	rule(w)
	for _, it := range items {
		fmt.Fprintf(w, "%s %s\n", pad(it.Source, 15), truncateStr(it.Title, ruleWidth-16))
		if it.Link != "" && it.Link != "#" {
			fmt.Fprintf(w, "%s %s\n", pad("", 15), it.Link)
		}
	}
}

// pad right-pads s to n terminal cells. Emoji count as two cells.
func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
