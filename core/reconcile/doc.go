// Package reconcile synchronises structural columns described by a CSV table
// with the columns placed in a host model.
//
// Each CSV row names a column by its tracking key (column_id), the base and
// top levels it spans, the two grid lines whose intersection locates it, and
// the family/type to place. The engine matches rows to existing columns by
// their Mark parameter and creates, updates or (optionally) deletes columns
// so the model matches the table.
//
// # Components
//
//   - ReadTable / ParseTable: CSV ingestion into ordered rows.
//   - ReferenceCatalog: levels and grids by trimmed name.
//   - TypeCatalog: column types by case-folded "family|type" key.
//   - ElementIndex: placed columns by tracking key.
//   - Intersect: 2D line-line intersection for placement.
//   - Engine: the per-row create/update/skip state machine.
//   - Render: the text report of a Run.
//
// # Transactions
//
// A pass runs inside one Transaction obtained from Model.Begin. Every row
// mutation runs inside Transaction.Atomic so a failing row leaves no trace,
// while rows that succeeded are kept. The transaction is committed once all
// rows are processed.
//
// # Failures
//
// Missing file, empty file and a model without levels, grids or column
// types are precondition failures (ErrNotFound, ErrEmpty, ErrNoLevels,
// ErrNoGrids, ErrNoTypes) and abort before any mutation. Every other
// problem is recorded against its row and the pass continues.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(store.New(db), logger)
//	run, err := engine.SyncFile(ctx, "columns.csv", reconcile.Options{})
//	if msg, ok := reconcile.PreconditionMessage(err); ok {
//	    fmt.Println(msg)
//	    return
//	}
//	fmt.Println(run.Report())
package reconcile
