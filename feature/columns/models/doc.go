// Package models defines the GORM models of the structural column store:
// levels, grids, column types and placed columns, plus their conversion to
// the reconcile engine's types.
package models
