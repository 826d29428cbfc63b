// Command ls-hora is a terminal UI for planetary-hour trading signals on
// Indian indices.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/litescript/ls-hora/internal/config"
	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/ephem"
	"github.com/litescript/ls-hora/internal/logging"
	"github.com/litescript/ls-hora/internal/news"
	"github.com/litescript/ls-hora/internal/report"
	"github.com/litescript/ls-hora/internal/state"
	"github.com/litescript/ls-hora/internal/ui"
	"github.com/litescript/ls-hora/internal/version"
)

// CLI flags for headless mode
type headlessFlags struct {
	summary     bool
	plannerMode bool
	newsMode    bool
	jsonPath    string
	watch       time.Duration
}

func (h headlessFlags) enabled() bool {
	return h.summary || h.plannerMode || h.newsMode || h.jsonPath != ""
}

// app bundles the long-lived components shared by the TUI and headless modes.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	engine  *engine.Engine
	fetcher *news.Fetcher // nil when news is disabled
	state   *state.Manager
}

func main() {
	fs := pflag.NewFlagSet("ls-hora", pflag.ExitOnError)
	config.RegisterFlags(fs)

	var hf headlessFlags
	fs.BoolVar(&hf.summary, "summary", false, "Print text summary instead of TUI")
	fs.BoolVar(&hf.plannerMode, "planner", false, "Print the trade planner (all indices, or --index)")
	fs.BoolVar(&hf.newsMode, "headlines", false, "Print market headlines")
	fs.StringVar(&hf.jsonPath, "json", "", "Export JSON snapshot to file (use - for stdout)")
	fs.DurationVar(&hf.watch, "watch", 0, "Repeat headless output at interval (e.g., 1m)")
	showVersion := fs.BoolP("version", "v", false, "Print version and exit")
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("ls-hora %s\n", version.Version)
		return
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(2)
	}

	logger := logging.New(cfg.LogLevel())
	logger.SetFormat(cfg.LogFormat())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := newApp(cfg, logger)

	// Headless when asked, or when stdout is not a terminal
	if hf.enabled() || !term.IsTerminal(int(os.Stdout.Fd())) {
		if !hf.enabled() {
			hf.summary = true
		}
		if err := a.runHeadless(ctx, hf, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The TUI owns the terminal; keep log lines out of the alt screen
	logger.SetOutput(io.Discard)

	refresh := make(chan struct{}, 1)
	model := ui.New(a.state, ui.WithRefresh(func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	go a.runRefreshLoop(ctx, p, refresh)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, logger *logging.Logger) *app {
	provider := ephem.New(cfg.EphemerisMode())
	logger.Debug("Ephemeris provider: %s", provider.Name())

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = cfg.RefreshInterval()

	a := &app{
		cfg:    cfg,
		logger: logger,
		engine: engine.New(provider, logger),
		state:  state.NewManager(stateCfg),
	}
	if cfg.News.Enabled {
		a.fetcher = news.NewFetcher(news.WithTimeout(cfg.News.Timeout))
	}
	return a
}

// evaluate runs the pipeline once and records the result.
func (a *app) evaluate(now time.Time) error {
	in, err := a.cfg.Inputs(now)
	if err != nil {
		return err
	}

	start := time.Now()
	ev, err := a.engine.Evaluate(in, now)
	dur := time.Since(start)

	a.state.Update(ev, dur, err)
	if err != nil {
		return err
	}
	a.logger.Debug("Evaluated %s in %v (%d slots)", ev.Schedule.Date.Format("2006-01-02"), dur, len(ev.Rows))
	return nil
}

// fetchNews refreshes headlines. Failures are logged, never returned.
func (a *app) fetchNews(ctx context.Context) {
	if a.fetcher == nil {
		return
	}
	res := a.fetcher.Fetch(ctx)
	if res.Error != nil {
		a.logger.Warn("News fetch: %v", res.Error)
	}
	a.state.UpdateNews(res)
}

func (a *app) runRefreshLoop(ctx context.Context, p *tea.Program, refresh <-chan struct{}) {
	tick := func(forceNews bool) {
		if forceNews && a.fetcher != nil {
			a.fetcher.Invalidate()
		}
		if err := a.evaluate(time.Now()); err != nil {
			a.logger.Error("Evaluation failed: %v", err)
			p.Send(ui.ErrorMsg{Error: err})
		}
		p.Send(ui.DataUpdateMsg{Snapshot: a.state.Snapshot()})

		// Headlines arrive after the schedule so a slow feed never delays it
		a.fetchNews(ctx)
		p.Send(ui.DataUpdateMsg{Snapshot: a.state.Snapshot()})
	}

	tick(false)

	ticker := time.NewTicker(a.state.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Refresh loop shutting down")
			return
		case <-ticker.C:
			tick(false)
		case <-refresh:
			tick(true)
			ticker.Reset(a.state.RefreshInterval())
		}
	}
}

// runHeadless handles all headless modes without starting the TUI.
func (a *app) runHeadless(ctx context.Context, hf headlessFlags, w io.Writer) error {
	outputOnce := func() error {
		now := time.Now()
		if err := a.evaluate(now); err != nil {
			if errors.Is(err, engine.ErrMarketClosed) {
				fmt.Fprintf(w, "Market Closed: %v\n", err)
				return nil
			}
			return err
		}

		if hf.newsMode || hf.jsonPath != "" {
			a.fetchNews(ctx)
		}
		snap := a.state.Snapshot()
		ev := snap.Evaluation

		if hf.jsonPath != "" {
			if err := writeJSON(hf.jsonPath, report.ExportSnapshot(ev, snap.News, now), w); err != nil {
				return err
			}
		}

		if hf.summary {
			report.WriteSummary(w, ev)
		}

		if hf.plannerMode {
			if hf.summary {
				fmt.Fprintln(w)
			}
			if err := report.WritePlanner(w, ev, a.cfg.IndexName()); err != nil {
				return err
			}
		}

		if hf.newsMode {
			if len(snap.News) == 0 {
				fmt.Fprintln(w, "News disabled (--news=false)")
			} else {
				report.WriteNews(w, snap.News)
			}
		}
		return nil
	}

	if hf.watch == 0 {
		return outputOnce()
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		a.logger.Error("%v", err)
	}

	ticker := time.NewTicker(hf.watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Fprintln(w)
			if err := outputOnce(); err != nil {
				a.logger.Error("%v", err)
			}
		}
	}
}

func writeJSON(path string, export *report.SnapshotExport, stdout io.Writer) error {
	if path == "-" {
		if err := export.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}
