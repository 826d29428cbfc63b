package astro

import (
	"math"
	"time"
)

// SunAltitudeAtRiseSet is the geometric altitude of the Sun's centre at
// apparent sunrise and sunset (refraction plus semidiameter).
const SunAltitudeAtRiseSet = -0.8333

// EclipticPoint is an apparent geocentric ecliptic position of date.
type EclipticPoint struct {
	LonDeg float64
	LatDeg float64
	DistKm float64
}

// solarTerms holds the intermediate quantities shared by the sun functions.
type solarTerms struct {
	T        float64 // Julian centuries TT from J2000.0
	lonApp   float64 // apparent longitude (degrees)
	radiusAU float64
	omega    float64 // longitude of the Moon's ascending node (degrees)
}

func solar(t time.Time) solarTerms {
	T := (JulianDateTT(t) - J2000) / 36525.0

	// Mean longitude and mean anomaly
	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of centre
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	trueLon := L0 + C
	v := degToRad(M + C)
	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T
	R := (1.000001018 * (1 - e*e)) / (1 + e*math.Cos(v))

	// Aberration and nutation
	omega := 125.04 - 1934.136*T
	lonApp := trueLon - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	return solarTerms{
		T:        T,
		lonApp:   normalizeAngle360(lonApp),
		radiusAU: R,
		omega:    omega,
	}
}

// SunEcliptic returns the Sun's apparent geocentric ecliptic position.
// Accuracy is about 0.01° in longitude.
func SunEcliptic(t time.Time) EclipticPoint {
	s := solar(t)
	return EclipticPoint{
		LonDeg: s.lonApp,
		LatDeg: 0,
		DistKm: s.radiusAU * AU,
	}
}

// SunPosition calculates the apparent equatorial coordinates of the Sun.
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	s := solar(t)

	eps := MeanObliquity(t) + 0.00256*math.Cos(degToRad(s.omega))
	lon := degToRad(s.lonApp)
	epsRad := degToRad(eps)

	ra := math.Atan2(math.Cos(epsRad)*math.Sin(lon), math.Cos(lon))
	raDeg = normalizeAngle360(radToDeg(ra))
	decDeg = radToDeg(math.Asin(math.Sin(epsRad) * math.Sin(lon)))

	return raDeg, decDeg
}

// SunAltitude returns the Sun's geometric altitude in degrees for an observer.
func SunAltitude(obs Observer, t time.Time) float64 {
	ra, dec := SunPosition(t)
	return EquatorialToHorizontal(SkyCoord{RAdeg: ra, DecDeg: dec}, obs, t).ElDeg
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(t time.Time) float64 {
	T := (JulianDateTT(t) - J2000) / 36525.0
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7
