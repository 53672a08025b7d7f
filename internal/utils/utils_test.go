package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDisplayDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		parsed bool
	}{
		{"Sun Jun 16 2024", time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), true},
		{"Sat Jun 1 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-06-02", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"2024-06-16T08:26:56Z", time.Date(2024, 6, 16, 8, 26, 56, 0, time.UTC), true},
		{"yesterday", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDisplayDate(tt.in)
		assert.Equal(t, tt.parsed, ok, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
	}
}

func TestFormatDisplayDate(t *testing.T) {
	d := time.Date(2024, 6, 16, 8, 26, 56, 0, time.UTC)
	assert.Equal(t, "Sun Jun 16 2024", FormatDisplayDate(d))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 95, DurationMinutes(1, 35))
	assert.Equal(t, "1:05:00", FormatDuration(1, 5))
}

func TestNumberCleaning(t *testing.T) {
	assert.Equal(t, "450", DigitsOnly("4a5-0 kcal"))
	assert.Equal(t, "", DigitsOnly("none"))
	assert.Equal(t, "30", NormalizeInt("030"))
	assert.Equal(t, "", NormalizeInt("abc"))
	assert.Equal(t, "72.5", NormalizeDecimal("72.5kg"))
	assert.Equal(t, "", NormalizeDecimal("1.2.3"))
	assert.Equal(t, 320, AtoiOrZero("320 kcal"))
	assert.Equal(t, 0, AtoiOrZero(""))
	assert.Equal(t, 12, AtoiOrZero("12.5"))
	assert.Equal(t, 450, AtoiOrZero(" 450"))
	assert.Equal(t, 0, AtoiOrZero("about 300"))
	assert.Equal(t, 0, AtoiOrZero("-40"))
}
