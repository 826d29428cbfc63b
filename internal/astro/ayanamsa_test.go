package astro

import (
	"math"
	"testing"
	"time"
)

// j2000UTC is the UTC instant of J2000.0 TT.
var j2000UTC = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC).Add(-time.Duration(ttMinusUTC * float64(time.Second)))

func TestDaysSinceJ2000(t *testing.T) {
	if d := DaysSinceJ2000(j2000UTC); math.Abs(d) > 1e-6 {
		t.Errorf("DaysSinceJ2000(epoch) = %v, want 0", d)
	}

	later := j2000UTC.Add(10 * 24 * time.Hour)
	if d := DaysSinceJ2000(later); math.Abs(d-10) > 1e-6 {
		t.Errorf("DaysSinceJ2000(epoch+10d) = %v, want 10", d)
	}
}

func TestAyanamsa(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want float64
	}{
		{"J2000 epoch", j2000UTC, 23.85},
		{"one Julian year later", j2000UTC.Add(time.Duration(365.25 * 24 * float64(time.Hour))), 23.85 + 50.29/3600},
		{"one Julian year earlier", j2000UTC.Add(-time.Duration(365.25 * 24 * float64(time.Hour))), 23.85 - 50.29/3600},
		{"25 years later", j2000UTC.Add(time.Duration(25 * 365.25 * 24 * float64(time.Hour))), 23.85 + 25*50.29/3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ayanamsa(tt.time); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Ayanamsa() = %.8f, want %.8f", got, tt.want)
			}
		})
	}
}

func TestTropicalToSidereal(t *testing.T) {
	tests := []struct {
		tropical float64
		want     float64
	}{
		{30, 6.15},
		{10, 346.15},
		{23.85, 0},
		{0, 336.15},
	}

	for _, tt := range tests {
		got := TropicalToSidereal(tt.tropical, j2000UTC)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("TropicalToSidereal(%v) = %v, want %v", tt.tropical, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("TropicalToSidereal(%v) = %v out of [0,360)", tt.tropical, got)
		}
	}
}
