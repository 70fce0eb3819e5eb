package columns

import (
	"fmt"
	"os"
	"path/filepath"

	"column-sync/core/reconcile"
)

// ColumnID builds the tracking key of a row:
// {alpha_grid}{numeric_grid}-{base_level}{top_level}, e.g. "A1-L0L1".
func ColumnID(row reconcile.Row) string {
	return row.Get(reconcile.FieldAlphaGrid) + row.Get(reconcile.FieldNumericGrid) +
		"-" + row.Get(reconcile.FieldBaseLevel) + row.Get(reconcile.FieldTopLevel)
}

// PopulateIDs overwrites the column_id of every row with ColumnID, adding
// the header when the table lacks it.
func PopulateIDs(t *reconcile.Table) {
	hasHeader := false
	for _, h := range t.Headers {
		if h == reconcile.FieldColumnID {
			hasHeader = true
			break
		}
	}
	if !hasHeader {
		t.Headers = append(t.Headers, reconcile.FieldColumnID)
	}
	for _, row := range t.Rows {
		row[reconcile.FieldColumnID] = ColumnID(row)
	}
}

// PopulateIDsFile rewrites the CSV at in with populated ids. out defaults to
// in. It returns the number of rows written.
func PopulateIDsFile(in, out string) (int, error) {
	table, err := reconcile.ReadTable(in)
	if err != nil {
		return 0, err
	}
	PopulateIDs(table)

	if out == "" {
		out = in
	}
	tmp, err := os.CreateTemp(filepath.Dir(out), ".columns-*.csv")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := reconcile.WriteTable(tmp, table); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return 0, fmt.Errorf("failed to replace %s: %w", out, err)
	}
	return len(table.Rows), nil
}
