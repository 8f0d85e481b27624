// Package config provides configuration helpers for the facecam commands:
// environment defaults for flags and an optional YAML settings file.
package config

import "os"

// Defaults used when neither a flag nor an environment variable is set.
const (
	DefaultDevice      = "0"
	DefaultCascade     = "haarcascade_frontalface_alt.xml"
	DefaultPigoCascade = "facefinder"
	DefaultLogLevel    = "info"
)

// Environment variables read by the helpers below.
const (
	EnvDevice      = "FACECAM_DEVICE"
	EnvCascade     = "FACECAM_CASCADE"
	EnvPigoCascade = "FACECAM_PIGO_CASCADE"
	EnvWebPort     = "FACECAM_WEB_PORT"
	EnvLogLevel    = "FACECAM_LOG_LEVEL"
)

// Device returns the capture device from FACECAM_DEVICE.
func Device() string {
	return env(EnvDevice, DefaultDevice)
}

// Cascade returns the Haar cascade path from FACECAM_CASCADE.
func Cascade() string {
	return env(EnvCascade, DefaultCascade)
}

// PigoCascade returns the pigo cascade path from FACECAM_PIGO_CASCADE.
func PigoCascade() string {
	return env(EnvPigoCascade, DefaultPigoCascade)
}

// WebAddr returns ":<port>" from FACECAM_WEB_PORT, or "" when the web
// preview is off.
func WebAddr() string {
	if port := os.Getenv(EnvWebPort); port != "" {
		return ":" + port
	}
	return ""
}

// LogLevel returns the log level from FACECAM_LOG_LEVEL.
func LogLevel() string {
	return env(EnvLogLevel, DefaultLogLevel)
}

// IsSet reports whether the environment variable key holds a value.
func IsSet(key string) bool {
	return os.Getenv(key) != ""
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
