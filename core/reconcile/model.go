package reconcile

import "context"

// Model is the query surface of the host that owns the columns.
// Returned values are snapshots valid for a single reconciliation pass.
type Model interface {
	// Levels returns every level in the model.
	Levels(ctx context.Context) ([]Level, error)

	// Grids returns every grid line in the model.
	Grids(ctx context.Context) ([]Grid, error)

	// ColumnTypes returns every placeable column type definition.
	ColumnTypes(ctx context.Context) ([]ColumnType, error)

	// Columns returns every placed column instance.
	Columns(ctx context.Context) ([]Instance, error)

	// Begin opens the transaction that bounds one reconciliation pass.
	Begin(ctx context.Context, name string) (Transaction, error)
}

// Mutator is the mutation surface of the host.
type Mutator interface {
	// ActivateType makes a type definition usable for placement.
	ActivateType(ctx context.Context, id ElementID) error

	// Regenerate brings derived model state up to date after activation.
	Regenerate(ctx context.Context) error

	// CreateColumn places a new column of typ at pt on the base level.
	CreateColumn(ctx context.Context, pt Point, typ ColumnType, base Level) (*Instance, error)

	// SetMark writes the tracking key of a column.
	SetMark(ctx context.Context, id ElementID, mark string) error

	// SetLevel writes a level association (ParamBaseLevel or ParamTopLevel).
	SetLevel(ctx context.Context, id ElementID, p Param, level ElementID) error

	// MoveColumn relocates a point-based column.
	MoveColumn(ctx context.Context, id ElementID, pt Point) error

	// ChangeType reassigns the type of a column.
	ChangeType(ctx context.Context, id ElementID, typ ElementID) error

	// DeleteColumn removes a column from the model.
	DeleteColumn(ctx context.Context, id ElementID) error
}

// Transaction is the all-or-nothing boundary of a pass.
type Transaction interface {
	Mutator

	// Atomic runs fn so that its mutations are either all kept or all
	// discarded, without ending the enclosing transaction.
	Atomic(ctx context.Context, fn func(m Mutator) error) error

	Commit() error
	Rollback() error
}
