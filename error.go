package awstanding

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrParameterNotFound is matched by every [*ParameterNotFoundError].
var ErrParameterNotFound = errors.New("awstanding: parameter not found")

// ErrNoSecretReader is returned when secrets are loaded without a reader configured.
var ErrNoSecretReader = errors.New("awstanding: secret reader not configured; use WithSecretReader()")

// ParameterNotFoundError describes parameters the store reported as invalid: they either do not
// exist or the caller is not allowed to read them.
type ParameterNotFoundError struct {
	names []string
}

// NewParameterNotFoundError inits the error given the invalid parameter names.
func NewParameterNotFoundError(names ...string) *ParameterNotFoundError {
	return &ParameterNotFoundError{names: names}
}

// Names returns the invalid parameter names in the order the store reported them.
func (e *ParameterNotFoundError) Names() []string { return e.names }

func (e *ParameterNotFoundError) Error() string {
	return "awstanding: parameters not found: " + strings.Join(e.names, ", ")
}

// Is makes errors.Is(err, ErrParameterNotFound) work for any ParameterNotFoundError.
func (e *ParameterNotFoundError) Is(target error) bool {
	return target == ErrParameterNotFound //nolint:errorlint
}

// InvalidParametersOf returns the invalid parameter names if err is or wraps a
// [*ParameterNotFoundError] and nil otherwise.
func InvalidParametersOf(err error) []string {
	var nfErr *ParameterNotFoundError
	if errors.As(err, &nfErr) {
		return nfErr.Names()
	}
	return nil
}
