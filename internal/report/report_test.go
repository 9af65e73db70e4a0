package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{input: 0, expected: "0"},
		{input: 1500 * time.Millisecond, expected: "1.5"},
		{input: 2 * time.Second, expected: "2"},
		{input: 1234567 * time.Microsecond, expected: "1.234567"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input))
		})
	}
}

func TestFormatTime(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 3, 1, 12, 30, 5, 999, zone)

	assert.Equal(t, "2024-03-01T10:30:05Z", FormatTime(ts))
}
