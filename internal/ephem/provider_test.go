package ephem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"analytic", ModeAnalytic},
		{"horizons", ModeHorizons},
		{"auto", ModeAuto},
		{"noaa", ModeNOAA},
		{"", ModeAnalytic},        // default
		{"invalid", ModeAnalytic}, // default for unknown
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseMode(tc.input))
		})
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeAnalytic, "analytic"},
		{ModeHorizons, "horizons"},
		{ModeAuto, "auto"},
		{ModeNOAA, "noaa"},
		{Mode(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.mode.String())
		})
	}
}

func TestBodyString(t *testing.T) {
	assert.Equal(t, "Sun", BodySun.String())
	assert.Equal(t, "Moon", BodyMoon.String())
	assert.Equal(t, "Body(499)", Body(499).String())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "sunrise", Sunrise.String())
	assert.Equal(t, "sunset", Sunset.String())
	assert.Equal(t, "unknown", EventKind(7).String())
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestNew(t *testing.T) {
	assert.Equal(t, "Analytic", New(ModeAnalytic).Name())
	assert.Equal(t, "Horizons", New(ModeHorizons).Name())
	assert.Equal(t, "Horizons+Analytic", New(ModeAuto).Name())
	assert.Equal(t, "NOAA", New(ModeNOAA).Name())
}
