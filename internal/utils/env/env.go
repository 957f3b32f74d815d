package env

import (
	"os"
	"regexp"
)

var envKeyRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsSet returns true when the environment variable is present, regardless of its value
// (an empty value counts as set). Invalid keys are never set.
func IsSet(key string) bool {
	if !isValidKey(key) {
		return false
	}

	_, ok := os.LookupEnv(key)
	return ok
}

func isValidKey(k string) bool {
	return envKeyRegexp.MatchString(k)
}
