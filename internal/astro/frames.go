package astro

import (
	"math"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// SphericalToVec3 builds a vector from longitude/latitude in degrees and a distance.
func SphericalToVec3(lonDeg, latDeg, dist float64) Vec3 {
	lon := degToRad(lonDeg)
	lat := degToRad(latDeg)
	return Vec3{
		X: dist * math.Cos(lat) * math.Cos(lon),
		Y: dist * math.Cos(lat) * math.Sin(lon),
		Z: dist * math.Sin(lat),
	}
}

// EclipticLatitude returns the ecliptic latitude in degrees for a vector.
func EclipticLatitude(v Vec3) float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return radToDeg(math.Asin(v.Z / r))
}

// EclipticLongitude returns the ecliptic longitude in degrees for a vector.
func EclipticLongitude(v Vec3) float64 {
	return normalizeAngle360(radToDeg(math.Atan2(v.Y, v.X)))
}

// EquatorialToEcliptic rotates an equatorial vector into the ecliptic frame
// for the given obliquity in degrees. Units are preserved.
func EquatorialToEcliptic(eq Vec3, epsDeg float64) Vec3 {
	cosE := math.Cos(degToRad(epsDeg))
	sinE := math.Sin(degToRad(epsDeg))

	return Vec3{
		X: eq.X,
		Y: eq.Y*cosE + eq.Z*sinE,
		Z: -eq.Y*sinE + eq.Z*cosE,
	}
}

// EclipticToEquatorial is the inverse of EquatorialToEcliptic.
func EclipticToEquatorial(ecl Vec3, epsDeg float64) Vec3 {
	cosE := math.Cos(degToRad(epsDeg))
	sinE := math.Sin(degToRad(epsDeg))

	return Vec3{
		X: ecl.X,
		Y: ecl.Y*cosE - ecl.Z*sinE,
		Z: ecl.Y*sinE + ecl.Z*cosE,
	}
}
