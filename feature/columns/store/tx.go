package store

import (
	"context"
	"fmt"

	"column-sync/core/reconcile"
	"column-sync/feature/columns/models"

	"gorm.io/gorm"
)

// Tx is an open sync transaction. Atomic scopes run in savepoints, so a
// failed row is rolled back without losing the rows before it.
type Tx struct {
	db   *gorm.DB
	name string
}

// ActivateType marks a column type as active.
func (t *Tx) ActivateType(ctx context.Context, id reconcile.ElementID) error {
	res := t.db.WithContext(ctx).Model(&models.ColumnType{}).Where("id = ?", int64(id)).Update("active", true)
	if res.Error != nil {
		return fmt.Errorf("failed to activate column type %d: %w", id, res.Error)
	}
	return nil
}

// Regenerate is a no-op: the store holds no derived geometry.
func (t *Tx) Regenerate(ctx context.Context) error {
	return nil
}

// CreateColumn inserts a column at pt. The base level is set on creation;
// the mark and top level are written separately.
func (t *Tx) CreateColumn(ctx context.Context, pt reconcile.Point, typ reconcile.ColumnType, base reconcile.Level) (*reconcile.Instance, error) {
	row := models.Column{
		X:           pt.X,
		Y:           pt.Y,
		Z:           pt.Z,
		TypeID:      int64(typ.ID),
		BaseLevelID: int64(base.ID),
	}
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	inst := row.ToInstance()
	return &inst, nil
}

// SetMark writes the tracking key of a column.
func (t *Tx) SetMark(ctx context.Context, id reconcile.ElementID, mark string) error {
	return t.update(ctx, id, map[string]any{"mark": mark})
}

// SetLevel writes the base or top level of a column.
func (t *Tx) SetLevel(ctx context.Context, id reconcile.ElementID, p reconcile.Param, level reconcile.ElementID) error {
	var column string
	switch p {
	case reconcile.ParamBaseLevel:
		column = "base_level_id"
	case reconcile.ParamTopLevel:
		column = "top_level_id"
	default:
		return fmt.Errorf("unknown level parameter %q", p)
	}
	return t.update(ctx, id, map[string]any{column: int64(level)})
}

// MoveColumn relocates a column.
func (t *Tx) MoveColumn(ctx context.Context, id reconcile.ElementID, pt reconcile.Point) error {
	return t.update(ctx, id, map[string]any{"x": pt.X, "y": pt.Y, "z": pt.Z})
}

// ChangeType swaps the type of a column.
func (t *Tx) ChangeType(ctx context.Context, id reconcile.ElementID, typ reconcile.ElementID) error {
	return t.update(ctx, id, map[string]any{"type_id": int64(typ)})
}

// DeleteColumn removes a column.
func (t *Tx) DeleteColumn(ctx context.Context, id reconcile.ElementID) error {
	res := t.db.WithContext(ctx).Delete(&models.Column{}, int64(id))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("column %d not found", id)
	}
	return nil
}

// Atomic runs fn in a savepoint of the transaction.
func (t *Tx) Atomic(ctx context.Context, fn func(m reconcile.Mutator) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Tx{db: tx, name: t.name})
	})
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.db.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit %q: %w", t.name, err)
	}
	return nil
}

// Rollback aborts the transaction.
func (t *Tx) Rollback() error {
	if err := t.db.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back %q: %w", t.name, err)
	}
	return nil
}

// update writes values to one column row. MySQL reports unchanged rows as
// unaffected, so RowsAffected is not checked.
func (t *Tx) update(ctx context.Context, id reconcile.ElementID, values map[string]any) error {
	return t.db.WithContext(ctx).Model(&models.Column{}).Where("id = ?", int64(id)).Updates(values).Error
}
