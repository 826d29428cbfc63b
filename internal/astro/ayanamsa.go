package astro

import "time"

// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// ttMinusUTC is TT-UTC in seconds (TAI-UTC of 37 s plus 32.184 s). Leap
// seconds are ignored; the drift is well under a minute over the supported range.
const ttMinusUTC = 69.184

// Lahiri-style linear ayanamsa: value at J2000 and precession per Julian year.
const (
	AyanamsaAtJ2000   = 23.85
	PrecessionArcsecs = 50.29
)

// JulianDateTT returns the Julian Date on the Terrestrial Time scale, the
// continuous day count used for ephemeris epochs.
func JulianDateTT(t time.Time) float64 {
	return julianDate(t) + ttMinusUTC/86400.0
}

// DaysSinceJ2000 returns TT days elapsed since the J2000.0 epoch.
func DaysSinceJ2000(t time.Time) float64 {
	return JulianDateTT(t) - J2000
}

// Ayanamsa returns the tropical-to-sidereal offset in degrees at t.
//
// This is a linear approximation of the Lahiri ayanamsa and will differ from
// published tables by a fraction of a degree.
func Ayanamsa(t time.Time) float64 {
	years := DaysSinceJ2000(t) / 365.25
	return AyanamsaAtJ2000 + (PrecessionArcsecs/3600.0)*years
}

// TropicalToSidereal converts a tropical ecliptic longitude to sidereal, in [0,360).
func TropicalToSidereal(tropicalDeg float64, t time.Time) float64 {
	return normalizeAngle360(tropicalDeg - Ayanamsa(t))
}
