package store

import (
	"context"
	"fmt"

	"column-sync/core/reconcile"
	"column-sync/feature/columns/models"

	"gorm.io/gorm"
)

// Store exposes the column tables as a reconcile.Model.
type Store struct {
	db *gorm.DB
}

// New creates a store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the column tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate column tables: %w", err)
	}
	return nil
}

// Levels returns all levels.
func (s *Store) Levels(ctx context.Context) ([]reconcile.Level, error) {
	var rows []models.Level
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]reconcile.Level, len(rows))
	for i, r := range rows {
		out[i] = r.ToReference()
	}
	return out, nil
}

// Grids returns all grids.
func (s *Store) Grids(ctx context.Context) ([]reconcile.Grid, error) {
	var rows []models.Grid
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]reconcile.Grid, len(rows))
	for i, r := range rows {
		out[i] = r.ToReference()
	}
	return out, nil
}

// ColumnTypes returns all structural column types.
func (s *Store) ColumnTypes(ctx context.Context) ([]reconcile.ColumnType, error) {
	var rows []models.ColumnType
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]reconcile.ColumnType, len(rows))
	for i, r := range rows {
		out[i] = r.ToReference()
	}
	return out, nil
}

// Columns returns all placed columns.
func (s *Store) Columns(ctx context.Context) ([]reconcile.Instance, error) {
	var rows []models.Column
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]reconcile.Instance, len(rows))
	for i, r := range rows {
		out[i] = r.ToInstance()
	}
	return out, nil
}

// List returns the placed columns with their references resolved, ordered
// by mark.
func (s *Store) List(ctx context.Context) ([]models.ColumnView, error) {
	views := make([]models.ColumnView, 0)
	err := s.db.WithContext(ctx).
		Table("columns c").
		Select(`c.id AS id, c.mark AS mark, c.x AS x, c.y AS y, c.z AS z,
			t.family_name AS family, t.type_name AS type,
			b.name AS base_level, tl.name AS top_level`).
		Joins("LEFT JOIN column_types t ON t.id = c.type_id").
		Joins("LEFT JOIN levels b ON b.id = c.base_level_id").
		Joins("LEFT JOIN levels tl ON tl.id = c.top_level_id").
		Order("c.mark, c.id").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return views, nil
}

// Seed inserts the fixture rows in one transaction.
func (s *Store) Seed(ctx context.Context, f *models.Fixture) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(f.Levels) > 0 {
			if err := tx.Create(&f.Levels).Error; err != nil {
				return fmt.Errorf("failed to seed levels: %w", err)
			}
		}
		if len(f.Grids) > 0 {
			if err := tx.Create(&f.Grids).Error; err != nil {
				return fmt.Errorf("failed to seed grids: %w", err)
			}
		}
		if len(f.Types) > 0 {
			if err := tx.Create(&f.Types).Error; err != nil {
				return fmt.Errorf("failed to seed column types: %w", err)
			}
		}
		if len(f.Columns) > 0 {
			if err := tx.Create(&f.Columns).Error; err != nil {
				return fmt.Errorf("failed to seed columns: %w", err)
			}
		}
		return nil
	})
}

// Begin opens the transaction a sync pass runs in. The name is kept for
// logging only; SQL transactions are unnamed.
func (s *Store) Begin(ctx context.Context, name string) (reconcile.Transaction, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &Tx{db: tx, name: name}, nil
}
