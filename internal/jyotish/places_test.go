package jyotish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPlace(t *testing.T) {
	p, err := LookupPlace("North Lakhimpur")
	require.NoError(t, err)
	assert.InDelta(t, 27.2360, p.LatDeg, 1e-9)
	assert.InDelta(t, 94.1028, p.LonDeg, 1e-9)

	p, err = LookupPlace("  guwahati ")
	require.NoError(t, err)
	assert.Equal(t, "Guwahati", p.Name)

	_, err = LookupPlace("Mumbai")
	assert.ErrorIs(t, err, ErrUnknownPlace)
}

func TestPlaces(t *testing.T) {
	names := PlaceNames()
	assert.Len(t, names, 8)
	assert.Equal(t, DefaultPlace, names[0])
	assert.Contains(t, names, "Tinsukia")

	ps := Places()
	ps[0].Name = "changed"
	assert.Equal(t, DefaultPlace, Places()[0].Name)
}
