package jyotish

import (
	"fmt"
	"math"
)

const tithiSpanDeg = 12.0

const (
	PakshaShukla  = "Shukla (Waxing)"
	PakshaKrishna = "Krishna (Waning)"
)

var tithiNames = [15]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima/Amavasya",
}

// Tithi is a lunar day.
type Tithi struct {
	Index        int // 1-30
	DisplayIndex int // 1-15 within the paksha
	Name         string
	Paksha       string
}

// String renders the tithi as "<name> (<paksha>)".
func (t Tithi) String() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Paksha)
}

// Waxing reports whether the tithi falls in the bright half.
func (t Tithi) Waxing() bool {
	return t.Index <= 15
}

// TithiFromDiff returns the tithi for a moon-minus-sun longitude difference
// in degrees. Any real value is accepted and reduced modulo 360.
func TithiFromDiff(diffDeg float64) Tithi {
	diff := math.Mod(math.Mod(diffDeg, 360)+360, 360)
	idx := int(diff/tithiSpanDeg) + 1
	if idx > 30 {
		idx = 30
	}

	t := Tithi{Index: idx, DisplayIndex: idx, Paksha: PakshaShukla}
	if idx > 15 {
		t.DisplayIndex = idx - 15
		t.Paksha = PakshaKrishna
	}
	t.Name = tithiNames[t.DisplayIndex-1]

	switch idx {
	case 15:
		t.Name = "Purnima (Full Moon)"
	case 30:
		t.Name = "Amavasya (New Moon)"
	}
	return t
}
