package jyotish

import "math"

// NakshatraSpanDeg is the width of one nakshatra (13°20').
const NakshatraSpanDeg = 360.0 / 27

// PadamSpanDeg is the width of one padam (3°20').
const PadamSpanDeg = NakshatraSpanDeg / 4

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu", "Pushya", "Ashlesha",
	"Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// nakshatraLords repeats every nine nakshatras.
var nakshatraLords = [9]Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// Nakshatra is a lunar mansion and its quarter for a sidereal longitude.
type Nakshatra struct {
	Index     int // 0-26
	Name      string
	Lord      Planet
	Padam     int     // 1-4
	Longitude float64 // Sidereal longitude it was derived from
}

// NakshatraAt returns the nakshatra containing a sidereal longitude.
func NakshatraAt(lonDeg float64) Nakshatra {
	lon := math.Mod(math.Mod(lonDeg, 360)+360, 360)

	idx := int(lon/NakshatraSpanDeg) % 27
	padam := int(math.Mod(lon, NakshatraSpanDeg)/PadamSpanDeg) + 1
	if padam > 4 {
		padam = 4
	}

	return Nakshatra{
		Index:     idx,
		Name:      nakshatraNames[idx],
		Lord:      nakshatraLords[idx%9],
		Padam:     padam,
		Longitude: lon,
	}
}

// NakshatraNames returns the 27 names in order.
func NakshatraNames() []string {
	out := make([]string, len(nakshatraNames))
	copy(out, nakshatraNames[:])
	return out
}
