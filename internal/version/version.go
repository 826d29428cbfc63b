// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - News tab, index planner, NSE holiday calendar, JSON export
// 0.2.0 - JPL Horizons positions with analytic fallback, config file and env support
// 0.1.0 - Initial release: hora schedule, Rahu Kaal, tithi, birth star, headless summary
