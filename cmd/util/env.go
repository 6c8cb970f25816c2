package util

import (
	"os"
	"strconv"
)

// Environment variables read when the matching flag and config key are empty
const (
	EnvBaseDSN     = "SCHEMADELTA_BASE_DSN"
	EnvCompareDSN  = "SCHEMADELTA_COMPARE_DSN"
	EnvDSN         = "SCHEMADELTA_DSN"
	EnvConcurrency = "SCHEMADELTA_CONCURRENCY"
)

// GetEnvWithDefault returns the value of an environment variable or a default value if not set
func GetEnvWithDefault(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvIntWithDefault returns the value of an environment variable as int or a default value if not set
func GetEnvIntWithDefault(envVar string, defaultValue int) int {
	if value := os.Getenv(envVar); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ValueOrEnv returns value, falling back to envVar when value is empty
func ValueOrEnv(value, envVar string) string {
	if value != "" {
		return value
	}
	return GetEnvWithDefault(envVar, "")
}
