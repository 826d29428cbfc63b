// Package astro provides the low-precision solar, lunar and horizon math used
// to time planetary hours.
package astro

import (
	"math"
	"time"
)

// SkyCoord represents celestial coordinates with both equatorial (RA/Dec)
// and horizontal (Az/El) components.
type SkyCoord struct {
	// Equatorial coordinates (of date)
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)

	// Horizontal coordinates (observer-relative)
	AzDeg float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg float64 // Elevation/Altitude in degrees (0=horizon, 90=zenith)
}

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// EarthRadiusKm is the equatorial radius used for topocentric corrections.
const EarthRadiusKm = 6378.14

// EquatorialToHorizontal converts equatorial coordinates (RA/Dec) to horizontal
// coordinates (Az/El) for a given observer and time.
//
// Conventions:
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West
//   - Elevation: 0° = horizon, 90° = zenith
func EquatorialToHorizontal(eq SkyCoord, obs Observer, t time.Time) SkyCoord {
	lat := degToRad(obs.LatDeg)
	ra := degToRad(eq.RAdeg)
	dec := degToRad(eq.DecDeg)

	ha := degToRad(LocalSiderealTime(t, obs.LonDeg)) - ra

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(sinAlt)

	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	if cosAz > 1 {
		cosAz = 1
	} else if cosAz < -1 {
		cosAz = -1
	}
	az := math.Acos(cosAz)

	// West of the meridian when the hour angle is positive
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return SkyCoord{
		RAdeg:  eq.RAdeg,
		DecDeg: eq.DecDeg,
		AzDeg:  radToDeg(az),
		ElDeg:  radToDeg(alt),
	}
}

// ObserverVector returns the observer's geocentric position in km in the
// equatorial frame of date. Geodetic latitude is used as geocentric latitude;
// the difference is far below what the hora model can resolve.
func ObserverVector(obs Observer, t time.Time) Vec3 {
	lat := degToRad(obs.LatDeg)
	lst := degToRad(LocalSiderealTime(t, obs.LonDeg))
	return Vec3{
		X: EarthRadiusKm * math.Cos(lat) * math.Cos(lst),
		Y: EarthRadiusKm * math.Cos(lat) * math.Sin(lst),
		Z: EarthRadiusKm * math.Sin(lat),
	}
}

// LocalSiderealTime returns the Local Sidereal Time in degrees for a UTC
// time and east-positive observer longitude.
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return normalizeAngle360(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime calculates GMST in degrees (IAU 1982).
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := julianDate(t)
	T := (jd - J2000) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeAngle360(gmst)
}

// julianDate calculates the (UTC) Julian Date for a given time.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalizeAngle360 normalizes an angle to [0, 360).
func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// NormalizeDegrees reduces an angle to [0, 360).
func NormalizeDegrees(a float64) float64 {
	return normalizeAngle360(a)
}
