package reconcile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Counts(t *testing.T) {
	run := newRun(4, nil)
	run.Created = 2
	run.Updated = 1
	run.Deleted = 3
	run.skip(ReasonGridNotFound, "K9")

	out := Render(run, nil)

	assert.True(t, strings.HasPrefix(out, "CSV Sync Complete\n"+strings.Repeat("=", 50)+"\n\n"))
	assert.Contains(t, out, "Rows read  : 4\n")
	assert.Contains(t, out, "Created    : 2\n")
	assert.Contains(t, out, "Updated    : 1\n")
	assert.Contains(t, out, "Deleted    : 3\n")
	assert.Contains(t, out, "Skipped    : 1\n")
	assert.Contains(t, out, "\nRecent errors:\n  - grid not found: K9\n")
	assert.True(t, strings.HasSuffix(out, "Columns use 'Mark' parameter for tracking (column_id)\n"))
	assert.NotContains(t, out, "Available column types")
}

func TestRender_SkipReasonsSorted(t *testing.T) {
	run := newRun(3, nil)
	run.skip(ReasonTypeNotFound, "X - Y")
	run.skip(ReasonGridNotFound, "A")
	run.skip(ReasonGridNotFound, "B")

	out := Render(run, NewTypeCatalog(nil))

	typ := strings.Index(out, "  - family/type not found: 1")
	grid := strings.Index(out, "  - grid not found: 2")
	assert.Greater(t, typ, 0)
	assert.Greater(t, grid, typ)
}

func TestRender_NoSkipSection(t *testing.T) {
	run := newRun(1, nil)
	run.Created = 1

	out := Render(run, nil)

	assert.NotContains(t, out, "Skip reasons")
	assert.NotContains(t, out, "Recent errors")
}

func TestRender_ErrorSectionThreshold(t *testing.T) {
	run := newRun(10, nil)
	for i := 0; i < maxReportedErrors; i++ {
		run.skip(ReasonGridNotFound, fmt.Sprintf("K%d", i))
	}
	assert.Contains(t, Render(run, nil), "Recent errors:")

	run.skip(ReasonGridNotFound, "one too many")
	out := Render(run, nil)
	assert.NotContains(t, out, "Recent errors:")
	assert.Contains(t, out, "  - grid not found: 11\n")
}

func TestRender_TypeHint(t *testing.T) {
	var types []ColumnType
	for i := 0; i < 13; i++ {
		types = append(types, ColumnType{ID: ElementID(i), Family: "RC", Name: fmt.Sprintf("%02d", i)})
	}
	catalog := NewTypeCatalog(types)

	run := newRun(1, catalog)
	run.skip(ReasonTypeNotFound, "RC - 99")
	out := run.Report()

	assert.Contains(t, out, "Available column types (13 found):\n")
	assert.Contains(t, out, "  - 'rc' : '00'\n")
	assert.Contains(t, out, "  - 'rc' : '09'\n")
	assert.NotContains(t, out, "'10'")
	assert.Contains(t, out, "  ... and 3 more\n")
}

func TestRender_TypeHintSmallCatalog(t *testing.T) {
	catalog := NewTypeCatalog([]ColumnType{{ID: 1, Family: "Steel", Name: "W10"}})
	run := newRun(1, catalog)
	run.skip(ReasonTypeNotFound, "RC - 1")

	out := run.Report()

	assert.Contains(t, out, "Available column types (1 found):\n  - 'steel' : 'w10'\n")
	assert.NotContains(t, out, "more")
}

func TestPreconditionMessage(t *testing.T) {
	msg, ok := PreconditionMessage(fmt.Errorf("%w: /tmp/columns.csv", ErrNotFound))
	assert.True(t, ok)
	assert.Equal(t, "Error: Columns CSV not found: /tmp/columns.csv", msg)

	msg, ok = PreconditionMessage(ErrNoGrids)
	assert.True(t, ok)
	assert.Equal(t, "Error: No grids found in project", msg)

	_, ok = PreconditionMessage(fmt.Errorf("failed to commit: %w", assert.AnError))
	assert.False(t, ok)

	_, ok = PreconditionMessage(nil)
	assert.False(t, ok)
}
