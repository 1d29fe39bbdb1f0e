package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDevice(t *testing.T) {
	tests := []struct {
		name     string
		device   string
		expected string
	}{
		{
			name:     "explicit device",
			device:   "/dev/watchdog1",
			expected: "/dev/watchdog1",
		},
		{
			name:     "empty falls back to default",
			device:   "",
			expected: DefaultDevice,
		},
		{
			name:     "whitespace only falls back to default",
			device:   "   ",
			expected: DefaultDevice,
		},
		{
			name:     "surrounding whitespace trimmed",
			device:   " /dev/watchdog0 ",
			expected: "/dev/watchdog0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Device: tt.device}
			assert.Equal(t, tt.expected, cfg.GetDevice())
		})
	}
}
