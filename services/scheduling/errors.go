package scheduling

import (
	"errors"
	"strings"
)

// Sentinel errors the handlers translate into HTTP statuses. Service methods
// never render user-facing responses themselves.
var (
	// ErrNotFound means the referenced appointment ID is not in the user's
	// definitions.
	ErrNotFound = errors.New("appointment not found")
	// ErrNothingToExport means no stored assignment references a known
	// appointment, so there is no export to build.
	ErrNothingToExport = errors.New("no scheduled appointments to export")
)

// ValidationErrors collects every problem found in a submitted payload. Bulk
// import paths return the full list for all rows rather than stopping at the
// first bad one, so a planner can fix a CSV in a single round trip.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// AsValidationErrors unwraps err into a ValidationErrors list if it is one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
