package config

import (
	"os"
	"strconv"
)

// LookupEnvOrString returns the value of the environment variable or a default.
func LookupEnvOrString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

// LookupEnvOrInt returns the integer value of the environment variable or a default.
func LookupEnvOrInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if x, err := strconv.Atoi(val); err == nil {
			return x
		}
	}

	return defaultVal
}

// LookupEnvOrInt64 returns the int64 value of the environment variable or a default.
func LookupEnvOrInt64(key string, defaultVal int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if x, err := strconv.ParseInt(val, 10, 64); err == nil {
			return x
		}
	}

	return defaultVal
}
