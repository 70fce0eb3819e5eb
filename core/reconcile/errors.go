package reconcile

import (
	"errors"
	"strings"
)

// Precondition failures. Each aborts a sync before the transaction opens.
var (
	ErrNotFound = errors.New("columns CSV not found")
	ErrEmpty    = errors.New("CSV file is empty")
	ErrNoLevels = errors.New("no levels found in project")
	ErrNoGrids  = errors.New("no grids found in project")
	ErrNoTypes  = errors.New("no structural column types found in project")
)

var errNotCreated = errors.New("host returned no instance")

// IsPrecondition reports whether err is one of the precondition failures.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEmpty) ||
		errors.Is(err, ErrNoLevels) ||
		errors.Is(err, ErrNoGrids) ||
		errors.Is(err, ErrNoTypes)
}

// PreconditionMessage renders a precondition failure as the plain message
// returned to callers in place of a report. ok is false for other errors.
func PreconditionMessage(err error) (msg string, ok bool) {
	if err == nil || !IsPrecondition(err) {
		return "", false
	}
	text := err.Error()
	return "Error: " + strings.ToUpper(text[:1]) + text[1:], true
}
