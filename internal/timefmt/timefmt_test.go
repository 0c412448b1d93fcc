package timefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"canonical", "08:30", 510},
		{"canonical single-digit hour", "1:05", 65},
		{"over a day", "26:10", 1570},
		{"hours and minutes", "1h 30m", 90},
		{"hours only", "2h", 120},
		{"minutes only", "45m", 45},
		{"minutes long form", "45 minutes", 45},
		{"decimal hours", "1.5", 90},
		{"decimal hours with suffix", "1.5h", 90},
		{"surrounding whitespace", "  00:45  ", 45},
		{"uppercase", "1H 30M", 90},
		{"empty", "", 0},
		{"garbage", "soon", 0},
		{"negative", "-45m", 0},
		{"bad minutes", "1:75", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.text))
		})
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	// formatMinutes(parseDuration(x)) must return canonical input unchanged
	for _, text := range []string{"00:00", "00:45", "01:30", "09:05", "12:00", "23:59"} {
		assert.Equal(t, text, Canonical(ParseDuration(text)))
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "00:00", Canonical(0))
	assert.Equal(t, "00:00", Canonical(-30))
	assert.Equal(t, "02:15", Canonical(135))
	assert.Equal(t, "25:00", Canonical(1500))
}

func TestIsCanonical(t *testing.T) {
	valid := []string{"00:00", "8:30", "08:30", "23:59"}
	for _, text := range valid {
		assert.True(t, IsCanonical(text), text)
	}

	invalid := []string{"24:00", "8:5", "1h 30m", "830", "", "08:60", "-1:30"}
	for _, text := range invalid {
		assert.False(t, IsCanonical(text), text)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatMinutes(0))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
	assert.Equal(t, "26h 10m", FormatMinutes(1570))
	assert.Equal(t, "0h 0m", FormatMinutes(-5))
}
