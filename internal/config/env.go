package config

import (
	"os"
	"strings"
)

// ConfigPathEnv names the variable holding the path of the YAML config file.
const ConfigPathEnv = EnvPrefix + "_CONFIG"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is unset or blank.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// ConfigPath picks the config file: flagValue when given, otherwise the
// LANEBATTLE_CONFIG variable. Empty means no file.
func ConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return GetEnv(ConfigPathEnv, "")
}
