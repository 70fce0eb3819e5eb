// Package columns exposes the column sync over the CLI and HTTP.
//
// It wires the reconcile engine to the database store, reads input tables
// from local files, request bodies or the object store, and archives each
// processed input together with its report.
//
// # Endpoints
//
//   - POST /columns/sync: run a sync. Accepts a multipart "file", an
//     ?object= key in the bucket, a raw CSV body, or nothing (configured
//     sync.csv_path). ?delete_missing=true removes untracked keys.
//   - GET /columns: list placed columns with resolved names.
//
// # Column IDs
//
// PopulateIDs fills column_id as {alpha_grid}{numeric_grid}-{base_level}{top_level}
// (e.g. "A1-L0L1") for tables produced without tracking keys.
//
// # Fixtures
//
// LoadFixture reads a YAML description of levels, grids, column types and
// columns used by the seed command to bootstrap a model.
package columns
