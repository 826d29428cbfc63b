// Package jyotish holds the sidereal calendar tables and calculations: day
// lords, the hora cycle, tithi, nakshatra and planetary friendship.
package jyotish

import "time"

// Planet is one of the seven classical planets or the lunar nodes.
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mars    Planet = "Mars"
	Mercury Planet = "Mercury"
	Jupiter Planet = "Jupiter"
	Venus   Planet = "Venus"
	Saturn  Planet = "Saturn"
	Rahu    Planet = "Rahu"
	Ketu    Planet = "Ketu"
)

// String returns the planet name.
func (p Planet) String() string {
	return string(p)
}

// horaCycle is the fixed order in which planets rule successive horas.
var horaCycle = [7]Planet{Sun, Venus, Mercury, Moon, Saturn, Jupiter, Mars}

// weekdayLords is indexed by time.Weekday (Sunday = 0).
var weekdayLords = [7]Planet{
	time.Sunday:    Sun,
	time.Monday:    Moon,
	time.Tuesday:   Mars,
	time.Wednesday: Mercury,
	time.Thursday:  Jupiter,
	time.Friday:    Venus,
	time.Saturday:  Saturn,
}

// HoraCycle returns a copy of the hora rotation order.
func HoraCycle() []Planet {
	out := make([]Planet, len(horaCycle))
	copy(out, horaCycle[:])
	return out
}

// DayLord returns the planet ruling the given weekday.
func DayLord(d time.Weekday) Planet {
	return weekdayLords[d%7]
}

// HoraPlanet returns the ruler of the i-th hora (0-based) of a day ruled by
// dayLord. Unknown lords start the cycle at the Sun.
func HoraPlanet(dayLord Planet, i int) Planet {
	start := 0
	for j, p := range horaCycle {
		if p == dayLord {
			start = j
			break
		}
	}
	return horaCycle[(start+i)%len(horaCycle)]
}
