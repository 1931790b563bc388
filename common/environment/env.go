// Package environment reads launcher settings from environment variables.
//
// Every helper takes the variable name and a fallback; unset, empty or
// unparsable values yield the fallback so a typo never stops the plugin.
package environment

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Prefix is prepended to every variable name read through Lookup helpers.
const Prefix = "LAUNCHDOCK_"

// Name returns the prefixed variable name for key ("LOG_LEVEL" -> "LAUNCHDOCK_LOG_LEVEL").
func Name(key string) string {
	return Prefix + key
}

// StringOr returns the value of the named variable, or def when unset or empty.
func StringOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// BoolOr parses the named variable with strconv.ParseBool.
func BoolOr(name string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(name))
	if err != nil {
		return def
	}
	return b
}

// IntOr parses the named variable as a decimal integer.
func IntOr(name string, def int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return def
	}
	return n
}

// DurationOr parses the named variable as a time.Duration ("500ms", "10s").
func DurationOr(name string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(name))
	if err != nil {
		return def
	}
	return d
}

// FieldsOr splits the named variable on whitespace, for argv-like values
// such as a terminal command.
func FieldsOr(name string, def []string) []string {
	f := strings.Fields(os.Getenv(name))
	if len(f) == 0 {
		return def
	}
	return f
}
