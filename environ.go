package awstanding

import (
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Environ is where resolved values end up.
type Environ interface {
	Setenv(key, value string) error
}

// OSEnviron writes to the process environment. Writes are not synchronized with other readers or
// writers of the same variables.
type OSEnviron struct{}

// Setenv calls os.Setenv.
func (OSEnviron) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// MapEnviron collects values in memory and leaves the process environment alone.
type MapEnviron map[string]string

// Setenv records the value.
func (m MapEnviron) Setenv(key, value string) error {
	m[key] = value
	return nil
}

var (
	_ Environ = OSEnviron{}
	_ Environ = MapEnviron{}
)

// Install writes vars into env in sorted key order and returns the keys that were written.
// It stops at the first failing write.
func Install(env Environ, vars map[string]string) ([]string, error) {
	keys := lo.Keys(vars)
	slices.Sort(keys)

	for i, key := range keys {
		if err := env.Setenv(key, vars[key]); err != nil {
			return keys[:i], errors.Wrapf(err, "failed to set %q", key)
		}
	}
	return keys, nil
}
