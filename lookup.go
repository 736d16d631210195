package awstanding

import (
	"encoding/base64"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// CastFunc transforms a raw parameter value before it is installed.
type CastFunc func(string) (string, error)

// Target names the environment variable a parameter is installed under and, optionally, how its
// value is cast first.
type Target struct {
	Name string
	Cast CastFunc
}

// Env targets the variable name with the raw value.
func Env(name string) Target {
	return Target{Name: name}
}

// EnvCast targets the variable name with cast(value).
func EnvCast(name string, cast CastFunc) Target {
	return Target{Name: name, Cast: cast}
}

func (t Target) value(raw string) (string, error) {
	if t.Cast == nil {
		return raw, nil
	}
	return t.Cast(raw)
}

// Lookup maps a parameter path to the environment variable it should be installed under.
//
//	awstanding.Lookup{
//	    "/my/app/db-host": awstanding.Env("DB_HOST"),
//	    "/my/app/db":      awstanding.EnvCast("DB_PASSWORD", awstanding.JSONPath("password")),
//	}
type Lookup map[string]Target

// Names returns a lookup that installs every key under the given variable name, without casts.
func Names(m map[string]string) Lookup {
	lookup := make(Lookup, len(m))
	for key, name := range m {
		lookup[key] = Env(name)
	}
	return lookup
}

// JSONPath parses the value as JSON and extracts the gjson path (e.g. "database.password",
// "api.keys.0"). Non-string results are returned in their JSON text form.
func JSONPath(path string) CastFunc {
	return func(raw string) (string, error) {
		if !gjson.Valid(raw) {
			return "", errors.New("value is not valid JSON")
		}
		result := gjson.Get(raw, path)
		if !result.Exists() {
			return "", errors.Errorf("path %q not found", path)
		}
		return result.String(), nil
	}
}

// Base64 decodes standard base64.
func Base64(raw string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode base64")
	}
	return string(b), nil
}

// TrimSpace strips leading and trailing white space.
func TrimSpace(raw string) (string, error) {
	return strings.TrimSpace(raw), nil
}

// Chain applies the casts left to right.
func Chain(casts ...CastFunc) CastFunc {
	return func(raw string) (string, error) {
		v := raw
		for _, cast := range casts {
			var err error
			if v, err = cast(v); err != nil {
				return "", err
			}
		}
		return v, nil
	}
}
