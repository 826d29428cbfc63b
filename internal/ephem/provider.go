// Package ephem provides apparent sun and moon positions and sunrise/sunset
// events for an observer.
package ephem

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-hora/internal/astro"
)

// Body is a NAIF SPICE ID for a solar-system body.
type Body int

const (
	BodySun  Body = 10
	BodyMoon Body = 301
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case BodySun:
		return "Sun"
	case BodyMoon:
		return "Moon"
	default:
		return fmt.Sprintf("Body(%d)", int(b))
	}
}

// ErrUnknownBody is returned for bodies a provider cannot position.
var ErrUnknownBody = errors.New("unknown body")

// EclipticPosition is an apparent, observer-centred ecliptic-of-date position.
type EclipticPosition struct {
	Time   time.Time
	LonDeg float64 // Tropical longitude (0-360)
	LatDeg float64
	DistKm float64 // Zero when the source does not report range
}

// EventKind distinguishes sunrise from sunset.
type EventKind int

const (
	Sunrise EventKind = iota
	Sunset
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case Sunrise:
		return "sunrise"
	case Sunset:
		return "sunset"
	default:
		return "unknown"
	}
}

// Event is a horizon crossing of the Sun.
type Event struct {
	Time time.Time
	Kind EventKind
}

// Provider defines the interface for ephemeris data sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Position returns the apparent ecliptic position of body at t as seen
	// from obs.
	Position(body Body, t time.Time, obs astro.Observer) (EclipticPosition, error)

	// SunEvents returns every sunrise and sunset in [start, end) for obs,
	// ordered by time. An empty result is not an error.
	SunEvents(start, end time.Time, obs astro.Observer) ([]Event, error)
}

// Mode represents which ephemeris source to use.
type Mode int

const (
	ModeAnalytic Mode = iota // Built-in series (default)
	ModeHorizons             // JPL Horizons for positions
	ModeAuto                 // Try Horizons, fall back to analytic
	ModeNOAA                 // NOAA sunrise/sunset, analytic positions
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAnalytic:
		return "analytic"
	case ModeHorizons:
		return "horizons"
	case ModeAuto:
		return "auto"
	case ModeNOAA:
		return "noaa"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. Unknown values select the analytic source.
func ParseMode(s string) Mode {
	switch s {
	case "horizons":
		return ModeHorizons
	case "auto":
		return ModeAuto
	case "noaa":
		return ModeNOAA
	default:
		return ModeAnalytic
	}
}

var (
	defaultOnce     sync.Once
	defaultProvider *AnalyticProvider
)

// Default returns the process-wide analytic provider. It is created on first
// use and never torn down.
func Default() *AnalyticProvider {
	defaultOnce.Do(func() {
		defaultProvider = NewAnalyticProvider()
	})
	return defaultProvider
}

// New builds a provider for the given mode.
func New(mode Mode) Provider {
	switch mode {
	case ModeHorizons:
		return NewHorizonsProvider()
	case ModeAuto:
		return NewFallbackProvider(NewHorizonsProvider(), Default())
	case ModeNOAA:
		return NewNOAAAlmanac(Default())
	default:
		return Default()
	}
}

// FallbackProvider answers from primary and retries on secondary when
// primary fails.
type FallbackProvider struct {
	primary   Provider
	secondary Provider

	mu      sync.Mutex
	lastErr error
}

// NewFallbackProvider creates a provider that prefers primary.
func NewFallbackProvider(primary, secondary Provider) *FallbackProvider {
	return &FallbackProvider{primary: primary, secondary: secondary}
}

// Name implements Provider.
func (f *FallbackProvider) Name() string {
	return f.primary.Name() + "+" + f.secondary.Name()
}

// Position implements Provider.
func (f *FallbackProvider) Position(body Body, t time.Time, obs astro.Observer) (EclipticPosition, error) {
	pos, err := f.primary.Position(body, t, obs)
	if err == nil {
		return pos, nil
	}
	f.setErr(err)
	return f.secondary.Position(body, t, obs)
}

// SunEvents implements Provider.
func (f *FallbackProvider) SunEvents(start, end time.Time, obs astro.Observer) ([]Event, error) {
	events, err := f.primary.SunEvents(start, end, obs)
	if err == nil {
		return events, nil
	}
	f.setErr(err)
	return f.secondary.SunEvents(start, end, obs)
}

// LastError returns the most recent primary failure, or nil.
func (f *FallbackProvider) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *FallbackProvider) setErr(err error) {
	f.mu.Lock()
	f.lastErr = err
	f.mu.Unlock()
}
