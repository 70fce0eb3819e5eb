package models

import (
	"strings"

	"column-sync/core/reconcile"
)

// Level is a row of the 'levels' table.
type Level struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement" yaml:"id"`
	Name      string  `gorm:"column:name;size:255;not null" yaml:"name"`
	Elevation float64 `gorm:"column:elevation" yaml:"elevation"`
}

// TableName overrides the table name.
func (Level) TableName() string { return "levels" }

// ToReference converts the row to the engine's level.
func (l Level) ToReference() reconcile.Level {
	return reconcile.Level{ID: reconcile.ElementID(l.ID), Name: l.Name, Elevation: l.Elevation}
}

// Grid is a row of the 'grids' table. Curved grids (arcs) have no straight
// segment and never intersect.
type Grid struct {
	ID     int64   `gorm:"column:id;primaryKey;autoIncrement" yaml:"id"`
	Name   string  `gorm:"column:name;size:255;not null" yaml:"name"`
	StartX float64 `gorm:"column:start_x" yaml:"start_x"`
	StartY float64 `gorm:"column:start_y" yaml:"start_y"`
	EndX   float64 `gorm:"column:end_x" yaml:"end_x"`
	EndY   float64 `gorm:"column:end_y" yaml:"end_y"`
	Curved bool    `gorm:"column:curved;not null;default:false" yaml:"curved"`
}

// TableName overrides the table name.
func (Grid) TableName() string { return "grids" }

// ToReference converts the row to the engine's grid.
func (g Grid) ToReference() reconcile.Grid {
	out := reconcile.Grid{ID: reconcile.ElementID(g.ID), Name: g.Name}
	if !g.Curved {
		out.Curve = &reconcile.Line{
			Start: reconcile.Point{X: g.StartX, Y: g.StartY},
			End:   reconcile.Point{X: g.EndX, Y: g.EndY},
		}
	}
	return out
}

// ColumnType is a row of the 'column_types' table.
type ColumnType struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" yaml:"id"`
	FamilyName string `gorm:"column:family_name;size:255;not null" yaml:"family"`
	TypeName   string `gorm:"column:type_name;size:255;not null" yaml:"type"`
	Active     bool   `gorm:"column:active;not null;default:false" yaml:"active"`
}

// TableName overrides the table name.
func (ColumnType) TableName() string { return "column_types" }

// ToReference converts the row to the engine's column type.
func (c ColumnType) ToReference() reconcile.ColumnType {
	return reconcile.ColumnType{
		ID:     reconcile.ElementID(c.ID),
		Family: c.FamilyName,
		Name:   c.TypeName,
		Active: c.Active,
	}
}

// Column is a row of the 'columns' table.
type Column struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" yaml:"id"`
	Mark        string  `gorm:"column:mark;size:255;index" yaml:"mark"`
	X           float64 `gorm:"column:x" yaml:"x"`
	Y           float64 `gorm:"column:y" yaml:"y"`
	Z           float64 `gorm:"column:z" yaml:"z"`
	SketchBased bool    `gorm:"column:sketch_based;not null;default:false" yaml:"sketch_based"` // no location point
	TypeID      int64   `gorm:"column:type_id" yaml:"type_id"`
	BaseLevelID int64   `gorm:"column:base_level_id" yaml:"base_level_id"`
	TopLevelID  int64   `gorm:"column:top_level_id" yaml:"top_level_id"`
	// LockedParams is a comma separated list of read-only parameters.
	LockedParams string `gorm:"column:locked_params;size:255" yaml:"locked_params"`
}

// TableName overrides the table name.
func (Column) TableName() string { return "columns" }

// ToInstance converts the row to the engine's instance.
func (c Column) ToInstance() reconcile.Instance {
	inst := reconcile.Instance{
		ID:          reconcile.ElementID(c.ID),
		Mark:        c.Mark,
		TypeID:      reconcile.ElementID(c.TypeID),
		BaseLevelID: reconcile.ElementID(c.BaseLevelID),
		TopLevelID:  reconcile.ElementID(c.TopLevelID),
		Params:      c.Params(),
	}
	if !c.SketchBased {
		inst.Location = &reconcile.Point{X: c.X, Y: c.Y, Z: c.Z}
	}
	return inst
}

// Params returns the parameter table of the column. Every column exposes
// mark, base and top level; the ones listed in LockedParams are read-only.
func (c Column) Params() map[reconcile.Param]bool {
	params := map[reconcile.Param]bool{
		reconcile.ParamMark:      false,
		reconcile.ParamBaseLevel: false,
		reconcile.ParamTopLevel:  false,
	}
	for _, p := range strings.Split(c.LockedParams, ",") {
		p = strings.TrimSpace(p)
		if _, ok := params[reconcile.Param(p)]; ok {
			params[reconcile.Param(p)] = true
		}
	}
	return params
}

// All lists every model managed by the column store, in migration order.
func All() []any {
	return []any{&Level{}, &Grid{}, &ColumnType{}, &Column{}}
}
