package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
		tol      float64
	}{
		{
			name:     "J2000 epoch",
			time:     time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 2451545.0,
			tol:      0.0001,
		},
		{
			name:     "Unix epoch",
			time:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2440587.5,
			tol:      0.0001,
		},
		{
			name:     "Known date 2024-01-01 00:00 UTC",
			time:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2460310.5,
			tol:      0.0001,
		},
		{
			name:     "IST wall clock converts to UTC",
			time:     time.Date(2024, 1, 1, 5, 30, 0, 0, time.FixedZone("IST", 19800)),
			expected: 2460310.5,
			tol:      0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := julianDate(tt.time)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("julianDate() = %v, want %v (±%v)", got, tt.expected, tt.tol)
			}
		})
	}
}

func TestGreenwichMeanSiderealTime(t *testing.T) {
	t2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	gmst := greenwichMeanSiderealTime(t2000)

	if math.Abs(gmst-280.46) > 0.1 {
		t.Errorf("GMST at J2000 = %v, want ~280.46", gmst)
	}
}

func TestLocalSiderealTime(t *testing.T) {
	testTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	gmst := greenwichMeanSiderealTime(testTime)

	if lst := LocalSiderealTime(testTime, 0); math.Abs(lst-gmst) > 0.001 {
		t.Errorf("LST at lon=0 = %v, want GMST %v", lst, gmst)
	}

	// Mumbai is ~72.88°E
	want := math.Mod(gmst+72.8777, 360)
	if lst := LocalSiderealTime(testTime, 72.8777); math.Abs(lst-want) > 0.001 {
		t.Errorf("LST at Mumbai = %v, want %v", lst, want)
	}

	for lon := -180.0; lon <= 180; lon += 30 {
		lst := LocalSiderealTime(testTime, lon)
		if lst < 0 || lst >= 360 {
			t.Errorf("LST at lon=%v out of range: %v", lon, lst)
		}
	}
}

func TestEquatorialToHorizontal_Polaris(t *testing.T) {
	polaris := SkyCoord{RAdeg: 37.95, DecDeg: 89.26}
	mumbai := Observer{LatDeg: 19.0760, LonDeg: 72.8777}

	for _, hour := range []int{0, 6, 12, 18} {
		tm := time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC)
		got := EquatorialToHorizontal(polaris, mumbai, tm)

		if math.Abs(got.ElDeg-mumbai.LatDeg) > 1.5 {
			t.Errorf("hour %d: Polaris El = %.2f°, want ~%.2f°", hour, got.ElDeg, mumbai.LatDeg)
		}
		if got.RAdeg != polaris.RAdeg || got.DecDeg != polaris.DecDeg {
			t.Error("RA/Dec should be preserved after transformation")
		}
	}
}

func TestEquatorialToHorizontal_ZenithStar(t *testing.T) {
	obs := Observer{LatDeg: 19.0, LonDeg: 73.0}
	tm := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	star := SkyCoord{RAdeg: LocalSiderealTime(tm, obs.LonDeg), DecDeg: obs.LatDeg}
	got := EquatorialToHorizontal(star, obs, tm)

	if got.ElDeg < 89.9 {
		t.Errorf("zenith star El = %.4f°, want 90°", got.ElDeg)
	}
}

func TestObserverVector(t *testing.T) {
	obs := Observer{LatDeg: 19.0760, LonDeg: 72.8777}
	v := ObserverVector(obs, time.Date(2025, 1, 6, 4, 0, 0, 0, time.UTC))

	if math.Abs(v.Norm()-EarthRadiusKm) > 1e-6 {
		t.Errorf("|site| = %v km, want %v", v.Norm(), EarthRadiusKm)
	}
	wantZ := EarthRadiusKm * math.Sin(degToRad(obs.LatDeg))
	if math.Abs(v.Z-wantZ) > 1e-6 {
		t.Errorf("site Z = %v, want %v", v.Z, wantZ)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-10, 350},
		{725, 5},
		{-720, 0},
	}

	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
