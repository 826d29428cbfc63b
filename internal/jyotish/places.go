package jyotish

import (
	"errors"
	"fmt"
	"strings"

	"github.com/litescript/ls-hora/internal/astro"
)

// ErrUnknownPlace is returned when a birth place is not in the gazetteer.
var ErrUnknownPlace = errors.New("unknown place")

// DefaultPlace is the gazetteer entry used when none is configured.
const DefaultPlace = "North Lakhimpur"

// places is the birth-place gazetteer, in display order.
var places = []astro.Observer{
	{Name: "North Lakhimpur", LatDeg: 27.2360, LonDeg: 94.1028},
	{Name: "Guwahati", LatDeg: 26.1445, LonDeg: 91.7362},
	{Name: "Dibrugarh", LatDeg: 27.4728, LonDeg: 94.9120},
	{Name: "Jorhat", LatDeg: 26.7509, LonDeg: 94.2037},
	{Name: "Silchar", LatDeg: 24.8333, LonDeg: 92.7789},
	{Name: "Tezpur", LatDeg: 26.6528, LonDeg: 92.7926},
	{Name: "Nagaon", LatDeg: 26.3452, LonDeg: 92.6838},
	{Name: "Tinsukia", LatDeg: 27.4886, LonDeg: 95.3558},
}

// Places returns a copy of the gazetteer.
func Places() []astro.Observer {
	out := make([]astro.Observer, len(places))
	copy(out, places)
	return out
}

// PlaceNames returns the gazetteer names in display order.
func PlaceNames() []string {
	names := make([]string, len(places))
	for i, p := range places {
		names[i] = p.Name
	}
	return names
}

// LookupPlace finds a place by name, ignoring case and surrounding space.
func LookupPlace(name string) (astro.Observer, error) {
	name = strings.TrimSpace(name)
	for _, p := range places {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return astro.Observer{}, fmt.Errorf("%w: %q", ErrUnknownPlace, name)
}
