package astro

import (
	"math"
	"testing"
	"time"
)

func TestMoonEcliptic_MeeusExample(t *testing.T) {
	// Astronomical Algorithms example 47.a: 1992 April 12.0 TD.
	// λ (apparent) = 133.167265°, β = -3.229126°, Δ = 368409.7 km.
	tm := time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC).Add(-time.Duration(ttMinusUTC * float64(time.Second)))
	got := MoonEcliptic(tm)

	if math.Abs(got.LonDeg-133.167265) > 0.05 {
		t.Errorf("Moon longitude = %.5f°, want 133.167265°", got.LonDeg)
	}
	if math.Abs(got.LatDeg-(-3.229126)) > 0.05 {
		t.Errorf("Moon latitude = %.5f°, want -3.229126°", got.LatDeg)
	}
	if math.Abs(got.DistKm-368409.7) > 100 {
		t.Errorf("Moon distance = %.1f km, want 368409.7 km", got.DistKm)
	}
}

func TestMoonEcliptic_Range(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 60; d++ {
		p := MoonEcliptic(start.AddDate(0, 0, d))
		if p.LonDeg < 0 || p.LonDeg >= 360 {
			t.Fatalf("day %d: longitude %v out of range", d, p.LonDeg)
		}
		if math.Abs(p.LatDeg) > 5.4 {
			t.Fatalf("day %d: latitude %v beyond lunar inclination", d, p.LatDeg)
		}
		if p.DistKm < 355000 || p.DistKm > 407000 {
			t.Fatalf("day %d: distance %v km out of range", d, p.DistKm)
		}
	}
}

func TestTopocentric_Parallax(t *testing.T) {
	mumbai := Observer{LatDeg: 19.0760, LonDeg: 72.8777}
	tm := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)

	geo := MoonEcliptic(tm)
	topo := Topocentric(geo, mumbai, tm)

	diff := math.Abs(topo.LonDeg - geo.LonDeg)
	if diff > 180 {
		diff = 360 - diff
	}
	// Horizontal parallax of the Moon never exceeds ~1.02°
	if diff > 1.1 {
		t.Errorf("lunar parallax in longitude = %.3f°, want <= 1.1°", diff)
	}

	sunGeo := SunEcliptic(tm)
	sunTopo := Topocentric(sunGeo, mumbai, tm)
	if d := math.Abs(sunTopo.LonDeg - sunGeo.LonDeg); d > 0.01 {
		t.Errorf("solar parallax in longitude = %.5f°, want < 0.01°", d)
	}
}
