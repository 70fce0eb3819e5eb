package models

// ColumnView is a placed column with its references resolved to names.
type ColumnView struct {
	ID        int64   `json:"id"`
	Mark      string  `json:"mark"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Family    string  `json:"family"`
	Type      string  `json:"type"`
	BaseLevel string  `json:"base_level"`
	TopLevel  string  `json:"top_level"`
}

// Fixture is a seed document for the column store.
type Fixture struct {
	Levels  []Level      `yaml:"levels"`
	Grids   []Grid       `yaml:"grids"`
	Types   []ColumnType `yaml:"types"`
	Columns []Column     `yaml:"columns"`
}
