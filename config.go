package msbin

import (
	"os"
	"strconv"
	"strings"
)

// Config represents the codec's runtime configuration.
type Config struct {
	// StrictMode, when enabled, rejects inputs that ParseBinary would
	// otherwise tolerate (truncated value buffers, out-of-range dictionary
	// indices) instead of degrading gracefully.
	StrictMode bool

	// ReadBufferSize is the size of the buffered reader used by ParseBinary
	// when wrapping a raw io.Reader.
	ReadBufferSize int

	// LogLevel is the zerolog level name ("debug", "info", "warn", "error",
	// "none"/"disabled").
	LogLevel string

	// do not access / write `set`. It is used internally.
	set bool
}

var config Config

// intFromEnvDefault returns the integer value of the environment variable
// named key, or def if it is unset or not parseable as an integer.
func intFromEnvDefault(key string, def int) int {
	valStr, found := os.LookupEnv(key)
	if !found {
		return def
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return def
	}
	return val
}

func boolFromEnvDefault(key string, def bool) bool {
	valStr, found := os.LookupEnv(key)
	if !found {
		return def
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return def
	}
	return val
}

func strFromEnvDefault(key string, def string) string {
	if val, found := os.LookupEnv(key); found {
		return val
	}
	return def
}

// GetConfig returns the codec configuration, populating it from the
// environment on first use.
func GetConfig() Config {
	if !config.set {
		config.StrictMode = boolFromEnvDefault("MSBIN_STRICTMODE", false)
		config.ReadBufferSize = intFromEnvDefault("MSBIN_READBUFFERSIZE", 64*1024)
		config.LogLevel = strings.ToLower(strFromEnvDefault("MSBIN_LOGLEVEL", "info"))
		setLoggingLevel(config.LogLevel)
		config.set = true
	}
	return config
}

// OverrideConfig replaces the active configuration with newconfig, bypassing
// environment lookups. Primarily useful in tests.
func OverrideConfig(newconfig Config) {
	newconfig.set = true
	config = newconfig
	setLoggingLevel(config.LogLevel)
}
