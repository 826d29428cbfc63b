package astro

import (
	"math"
	"time"
)

// lunarTerm is one periodic term of the truncated lunar theory. The integer
// multipliers apply to D, M, M' and F; sl is in 1e-6 degrees, sr in metres.
type lunarTerm struct {
	d, m, mp, f int
	sl, sr      float64
}

// Largest longitude/distance terms (Meeus, Astronomical Algorithms, table 47.A).
var lunarLonDist = []lunarTerm{
	{0, 0, 1, 0, 6288774, -20905355},
	{2, 0, -1, 0, 1274027, -3699111},
	{2, 0, 0, 0, 658314, -2955968},
	{0, 0, 2, 0, 213618, -569925},
	{0, 1, 0, 0, -185116, 48888},
	{0, 0, 0, 2, -114332, -3149},
	{2, 0, -2, 0, 58793, 246158},
	{2, -1, -1, 0, 57066, -152138},
	{2, 0, 1, 0, 53322, -170733},
	{2, -1, 0, 0, 45758, -204586},
	{0, 1, -1, 0, -40923, -129620},
	{1, 0, 0, 0, -34720, 108743},
	{0, 1, 1, 0, -30383, 104755},
	{2, 0, 0, -2, 15327, 10321},
	{0, 0, 1, 2, -12528, 0},
	{0, 0, 1, -2, 10980, 79661},
	{4, 0, -1, 0, 10675, -34782},
	{0, 0, 3, 0, 10034, -23210},
	{4, 0, -2, 0, 8548, -21636},
	{2, 1, -1, 0, -7888, 24208},
	{2, 1, 0, 0, -6766, 30824},
	{1, 0, -1, 0, -5163, -8379},
	{1, 1, 0, 0, 4987, -16675},
	{2, -1, 1, 0, 4036, -12831},
	{2, 0, 2, 0, 3994, -10445},
	{4, 0, 0, 0, 3861, -11650},
	{2, 0, -3, 0, 3665, 14403},
	{0, 1, -2, 0, -2689, -7003},
	{2, 0, -1, 2, -2602, 0},
	{2, -1, -2, 0, 2390, 10056},
	{1, 0, 1, 0, -2348, 6322},
	{2, -2, 0, 0, 2236, -9884},
}

// Largest latitude terms (table 47.B); sl holds Σb coefficients.
var lunarLat = []lunarTerm{
	{0, 0, 0, 1, 5128122, 0},
	{0, 0, 1, 1, 280602, 0},
	{0, 0, 1, -1, 277693, 0},
	{2, 0, 0, -1, 173237, 0},
	{2, 0, -1, 1, 55413, 0},
	{2, 0, -1, -1, 46271, 0},
	{2, 0, 0, 1, 32573, 0},
	{0, 0, 2, 1, 17198, 0},
	{2, 0, 1, -1, 9266, 0},
	{0, 0, 2, -1, 8822, 0},
	{2, -1, 0, -1, 8216, 0},
	{2, 0, -2, -1, 4324, 0},
	{2, 0, 1, 1, 4200, 0},
}

// MoonEcliptic returns the Moon's apparent geocentric ecliptic position.
// Truncated to the largest periodic terms; longitude is good to roughly
// 0.02°, which is far finer than a 3°20' padam.
func MoonEcliptic(t time.Time) EclipticPoint {
	T := (JulianDateTT(t) - J2000) / 36525.0
	T2 := T * T
	T3 := T2 * T
	T4 := T3 * T

	Lp := normalizeAngle360(218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841 - T4/65194000)
	D := normalizeAngle360(297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868 - T4/113065000)
	M := normalizeAngle360(357.5291092 + 35999.0502909*T - 0.0001536*T2 + T3/24490000)
	Mp := normalizeAngle360(134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699 - T4/14712000)
	F := normalizeAngle360(93.2720950 + 483202.0175233*T - 0.0036539*T2 - T3/3526000 + T4/863310000)

	A1 := 119.75 + 131.849*T
	A2 := 53.09 + 479264.290*T
	A3 := 313.45 + 481266.484*T

	// Eccentricity of Earth's orbit scales terms containing M
	E := 1 - 0.002516*T - 0.0000074*T2

	var sumL, sumR, sumB float64
	for _, term := range lunarLonDist {
		arg := degToRad(float64(term.d)*D + float64(term.m)*M + float64(term.mp)*Mp + float64(term.f)*F)
		scale := eccentricityFactor(term.m, E)
		sumL += term.sl * scale * math.Sin(arg)
		sumR += term.sr * scale * math.Cos(arg)
	}
	for _, term := range lunarLat {
		arg := degToRad(float64(term.d)*D + float64(term.m)*M + float64(term.mp)*Mp + float64(term.f)*F)
		sumB += term.sl * eccentricityFactor(term.m, E) * math.Sin(arg)
	}

	sumL += 3958*math.Sin(degToRad(A1)) + 1962*math.Sin(degToRad(Lp-F)) + 318*math.Sin(degToRad(A2))
	sumB += -2235*math.Sin(degToRad(Lp)) +
		382*math.Sin(degToRad(A3)) +
		175*math.Sin(degToRad(A1-F)) +
		175*math.Sin(degToRad(A1+F)) +
		127*math.Sin(degToRad(Lp-Mp)) -
		115*math.Sin(degToRad(Lp+Mp))

	// Nutation in longitude, same low-order term as the solar series
	omega := 125.04 - 1934.136*T
	lon := Lp + sumL/1e6 - 0.00478*math.Sin(degToRad(omega))

	return EclipticPoint{
		LonDeg: normalizeAngle360(lon),
		LatDeg: sumB / 1e6,
		DistKm: 385000.56 + sumR/1000,
	}
}

func eccentricityFactor(m int, E float64) float64 {
	switch m {
	case 1, -1:
		return E
	case 2, -2:
		return E * E
	default:
		return 1
	}
}

// Topocentric shifts a geocentric ecliptic position to the given observer.
// The Moon moves by up to a degree; the Sun by a few arcseconds.
func Topocentric(p EclipticPoint, obs Observer, t time.Time) EclipticPoint {
	geo := SphericalToVec3(p.LonDeg, p.LatDeg, p.DistKm)
	site := EquatorialToEcliptic(ObserverVector(obs, t), MeanObliquity(t))
	topo := geo.Sub(site)

	return EclipticPoint{
		LonDeg: EclipticLongitude(topo),
		LatDeg: EclipticLatitude(topo),
		DistKm: topo.Norm(),
	}
}
