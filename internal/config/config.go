// Package config loads settings from flags, LSHORA_* environment variables,
// an optional .env file and an optional ls-hora.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/ephem"
	"github.com/litescript/ls-hora/internal/jyotish"
	"github.com/litescript/ls-hora/internal/logging"
	"github.com/litescript/ls-hora/internal/market"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "LSHORA"

// Today selects the current IST date as the trading date.
const Today = "today"

// Refresh bounds.
const (
	DefaultRefresh = 60 * time.Second
	MinRefresh     = 10 * time.Second
	MaxRefresh     = 10 * time.Minute
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Config is the merged application configuration.
type Config struct {
	Birth     BirthConfig   `mapstructure:"birth"`
	Trading   TradingConfig `mapstructure:"trading"`
	Refresh   time.Duration `mapstructure:"refresh"`
	Log       LogConfig     `mapstructure:"log"`
	Ephemeris string        `mapstructure:"ephemeris"`
	News      NewsConfig    `mapstructure:"news"`
}

type BirthConfig struct {
	Date  string `mapstructure:"date"`
	Time  string `mapstructure:"time"`
	Place string `mapstructure:"place"`
}

type TradingConfig struct {
	Date  string `mapstructure:"date"`
	Index string `mapstructure:"index"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NewsConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"birth-date":   "birth.date",
	"birth-time":   "birth.time",
	"birth-place":  "birth.place",
	"date":         "trading.date",
	"index":        "trading.index",
	"refresh":      "refresh",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"ephemeris":    "ephemeris",
	"news":         "news.enabled",
	"news-timeout": "news.timeout",
}

// RegisterFlags adds the configuration flags to fs. Flag defaults are not
// applied; unset flags fall through to env, file and built-in defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to config file (default ./ls-hora.yaml or ~/.config/ls-hora/ls-hora.yaml)")
	fs.String("birth-date", "", "birth date (YYYY-MM-DD)")
	fs.String("birth-time", "", "birth time, 24h IST (HH:MM)")
	fs.String("birth-place", "", "birth place ("+strings.Join(jyotish.PlaceNames(), ", ")+")")
	fs.String("date", "", "trading date (YYYY-MM-DD or today)")
	fs.String("index", "", "index for the planner (empty for all)")
	fs.Duration("refresh", 0, "refresh interval (10s-10m)")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-format", "", "log format (console, json)")
	fs.String("ephemeris", "", "ephemeris source (analytic, horizons, auto, noaa)")
	fs.Bool("news", true, "fetch market headlines")
	fs.Duration("news-timeout", 0, "per-feed news timeout")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("birth.date", engine.DefaultBirthDate)
	v.SetDefault("birth.time", "00:37")
	v.SetDefault("birth.place", jyotish.DefaultPlace)

	v.SetDefault("trading.date", Today)
	v.SetDefault("trading.index", "")

	v.SetDefault("refresh", DefaultRefresh)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("ephemeris", ephem.ModeAnalytic.String())

	v.SetDefault("news.enabled", true)
	v.SetDefault("news.timeout", 5*time.Second)
}

// Load merges flags (when fs is non-nil), environment, .env and the config
// file over the built-in defaults. It does not validate.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// A missing .env is normal
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	explicit := ""
	if fs != nil {
		explicit, _ = fs.GetString("config")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("ls-hora")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ls-hora"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := time.Parse(dateLayout, c.Birth.Date); err != nil {
		errs = append(errs, fmt.Errorf("birth.date must be YYYY-MM-DD; got %q", c.Birth.Date))
	}
	if _, err := parseClock(c.Birth.Time); err != nil {
		errs = append(errs, fmt.Errorf("birth.time must be HH:MM; got %q", c.Birth.Time))
	}
	if _, err := jyotish.LookupPlace(c.Birth.Place); err != nil {
		errs = append(errs, fmt.Errorf("birth.place: %w", err))
	}

	if !strings.EqualFold(c.Trading.Date, Today) {
		if _, err := time.Parse(dateLayout, c.Trading.Date); err != nil {
			errs = append(errs, fmt.Errorf("trading.date must be YYYY-MM-DD or %q; got %q", Today, c.Trading.Date))
		}
	}
	if name := c.IndexName(); name != "" {
		if _, ok := market.LookupIndex(name); !ok {
			errs = append(errs, fmt.Errorf("trading.index %q is not tracked", c.Trading.Index))
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: console, json; got %q", c.Log.Format))
	}

	switch strings.ToLower(c.Ephemeris) {
	case "analytic", "horizons", "auto", "noaa":
	default:
		errs = append(errs, fmt.Errorf("ephemeris must be one of: analytic, horizons, auto, noaa; got %q", c.Ephemeris))
	}

	if c.News.Enabled && c.News.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("news.timeout must be positive; got %s", c.News.Timeout))
	}

	return errors.Join(errs...)
}

// Inputs converts the birth and trading settings into engine inputs.
func (c *Config) Inputs(now time.Time) (engine.Inputs, error) {
	birth, err := time.ParseInLocation(dateLayout, c.Birth.Date, market.IST)
	if err != nil {
		return engine.Inputs{}, fmt.Errorf("birth.date: %w", err)
	}
	clock, err := parseClock(c.Birth.Time)
	if err != nil {
		return engine.Inputs{}, fmt.Errorf("birth.time: %w", err)
	}
	trading, err := c.TradingDate(now)
	if err != nil {
		return engine.Inputs{}, err
	}

	return engine.Inputs{
		BirthDate:   birth,
		BirthTime:   clock,
		BirthPlace:  c.Birth.Place,
		TradingDate: trading,
	}, nil
}

// TradingDate resolves trading.date, treating "today" as now's IST date.
func (c *Config) TradingDate(now time.Time) (time.Time, error) {
	if c.Trading.Date == "" || strings.EqualFold(c.Trading.Date, Today) {
		now = now.In(market.IST)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, market.IST), nil
	}
	d, err := time.ParseInLocation(dateLayout, c.Trading.Date, market.IST)
	if err != nil {
		return time.Time{}, fmt.Errorf("trading.date: %w", err)
	}
	return d, nil
}

// IsToday reports whether the trading date follows the wall clock.
func (c *Config) IsToday() bool {
	return c.Trading.Date == "" || strings.EqualFold(c.Trading.Date, Today)
}

// RefreshInterval returns Refresh clamped to [MinRefresh, MaxRefresh].
func (c *Config) RefreshInterval() time.Duration {
	switch {
	case c.Refresh <= 0:
		return DefaultRefresh
	case c.Refresh < MinRefresh:
		return MinRefresh
	case c.Refresh > MaxRefresh:
		return MaxRefresh
	default:
		return c.Refresh
	}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// LogFormat returns the parsed log format.
func (c *Config) LogFormat() logging.Format {
	return logging.ParseFormat(c.Log.Format)
}

// EphemerisMode returns the parsed ephemeris source.
func (c *Config) EphemerisMode() ephem.Mode {
	return ephem.ParseMode(strings.ToLower(c.Ephemeris))
}

// IndexName returns the planner index in canonical upper case.
func (c *Config) IndexName() string {
	return strings.ToUpper(strings.TrimSpace(c.Trading.Index))
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
