package jyotish

import (
	"fmt"
	"time"

	"github.com/litescript/ls-hora/internal/astro"
	"github.com/litescript/ls-hora/internal/ephem"
)

// Calculator derives sidereal quantities from an ephemeris provider.
type Calculator struct {
	Provider ephem.Provider
}

// NewCalculator creates a calculator. A nil provider selects ephem.Default.
func NewCalculator(p ephem.Provider) *Calculator {
	if p == nil {
		p = ephem.Default()
	}
	return &Calculator{Provider: p}
}

// SiderealLongitude returns the body's apparent sidereal ecliptic longitude
// in [0, 360) as seen from obs at t.
func (c *Calculator) SiderealLongitude(body ephem.Body, t time.Time, obs astro.Observer) (float64, error) {
	pos, err := c.Provider.Position(body, t, obs)
	if err != nil {
		return 0, fmt.Errorf("%s position: %w", body, err)
	}
	return astro.TropicalToSidereal(pos.LonDeg, t), nil
}

// Tithi returns the lunar day at t for obs.
func (c *Calculator) Tithi(t time.Time, obs astro.Observer) (Tithi, error) {
	moon, err := c.SiderealLongitude(ephem.BodyMoon, t, obs)
	if err != nil {
		return Tithi{}, err
	}
	sun, err := c.SiderealLongitude(ephem.BodySun, t, obs)
	if err != nil {
		return Tithi{}, err
	}
	return TithiFromDiff(moon - sun), nil
}

// Nakshatra returns the Moon's nakshatra at t for obs.
func (c *Calculator) Nakshatra(t time.Time, obs astro.Observer) (Nakshatra, error) {
	lon, err := c.SiderealLongitude(ephem.BodyMoon, t, obs)
	if err != nil {
		return Nakshatra{}, err
	}
	return NakshatraAt(lon), nil
}
