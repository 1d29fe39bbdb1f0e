package config

import "strings"

// DefaultDevice is the well-known watchdog device node used when neither
// the --device flag nor the WDCTL_DEVICE environment variable is set.
const DefaultDevice = "/dev/watchdog"

// Config holds the resolved runtime configuration. It is populated by
// viper in cmd/root.go, which layers the --device flag over the WDCTL_*
// environment variables.
type Config struct {
	Device string `mapstructure:"device"`
}

// GetDevice returns the configured device path, falling back to
// DefaultDevice when nothing was set.
func (c Config) GetDevice() string {
	device := strings.TrimSpace(c.Device)
	if device == "" {
		return DefaultDevice
	}
	return device
}
