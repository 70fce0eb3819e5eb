package reconcile

import (
	"fmt"
	"strings"
)

// CSV field names consumed by the engine.
const (
	FieldColumnID    = "column_id"
	FieldBaseLevel   = "base_level"
	FieldTopLevel    = "top_level"
	FieldAlphaGrid   = "alpha_grid"
	FieldNumericGrid = "numeric_grid"
	FieldColumnType  = "column_type"
	FieldSize        = "size"
)

// Skip reasons recorded in a Run.
const (
	ReasonMissingKey      = "missing key"
	ReasonLevelNotFound   = "level not found"
	ReasonGridNotFound    = "grid not found"
	ReasonNoIntersection  = "grid intersection failed"
	ReasonTypeNotFound    = "family/type not found"
	ReasonNotCreated      = "failed to create"
	ReasonCreationError   = "creation error"
	ReasonUpdateError     = "update error"
	ReasonRowProcessError = "row processing error"
)

// ElementID identifies an element owned by the host model.
type ElementID int64

// Point is a model-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Line is a bounded reference line. Only X and Y take part in intersection.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Level is a named horizontal datum.
type Level struct {
	ID        ElementID
	Name      string
	Elevation float64
}

// Grid is a named reference line. Curve is nil when the host cannot
// express the grid as a straight segment.
type Grid struct {
	ID    ElementID
	Name  string
	Curve *Line
}

// ColumnType is a placeable family/type pair.
type ColumnType struct {
	ID     ElementID
	Family string
	Name   string
	Active bool
}

// Param names an instance attribute the engine writes.
type Param string

const (
	// ParamMark holds the tracking key.
	ParamMark Param = "mark"
	// ParamBaseLevel holds the base level association.
	ParamBaseLevel Param = "base_level"
	// ParamTopLevel holds the top level association.
	ParamTopLevel Param = "top_level"
)

// Instance is a modeled column.
type Instance struct {
	ID          ElementID
	Mark        string
	Location    *Point
	TypeID      ElementID
	BaseLevelID ElementID
	TopLevelID  ElementID

	// Params lists the attributes the instance exposes. The value is true
	// when the attribute is read-only.
	Params map[Param]bool
}

// Writable reports whether p exists on the instance and can be written.
func (i *Instance) Writable(p Param) bool {
	readOnly, ok := i.Params[p]
	return ok && !readOnly
}

// Run accumulates the statistics of one reconciliation pass.
type Run struct {
	Total   int            `json:"total"`
	Created int            `json:"created"`
	Updated int            `json:"updated"`
	Deleted int            `json:"deleted"`
	Skipped int            `json:"skipped"`
	Reasons map[string]int `json:"reasons"`
	Errors  []string       `json:"errors"`

	types *TypeCatalog
}

func newRun(total int, types *TypeCatalog) *Run {
	return &Run{
		Total:   total,
		Reasons: make(map[string]int),
		Errors:  []string{},
		types:   types,
	}
}

func (r *Run) skip(reason, detail string) {
	r.Skipped++
	r.Reasons[reason]++
	if detail != "" {
		r.Errors = append(r.Errors, reason+": "+detail)
	}
}

// Summary returns the one-line count summary of the run.
func (r *Run) Summary() string {
	return fmt.Sprintf("Created: %d, Updated: %d, Skipped: %d", r.Created, r.Updated, r.Skipped)
}

// Report renders the full text report of the run.
func (r *Run) Report() string {
	return Render(r, r.types)
}

// Row is one data line of the input table, keyed by header name.
type Row map[string]string

// Get returns the trimmed value of field, or "" when the row lacks it.
func (r Row) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// Table is a parsed input file.
type Table struct {
	Headers []string
	Rows    []Row
}
