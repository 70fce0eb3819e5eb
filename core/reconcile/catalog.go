package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ReferenceCatalog indexes levels and grids by trimmed name.
// Lookups are exact; a duplicated name keeps the last object seen.
type ReferenceCatalog struct {
	levels map[string]*Level
	grids  map[string]*Grid
}

// NewReferenceCatalog indexes the given levels and grids.
func NewReferenceCatalog(levels []Level, grids []Grid) *ReferenceCatalog {
	c := &ReferenceCatalog{
		levels: make(map[string]*Level, len(levels)),
		grids:  make(map[string]*Grid, len(grids)),
	}
	for i := range levels {
		c.levels[strings.TrimSpace(levels[i].Name)] = &levels[i]
	}
	for i := range grids {
		c.grids[strings.TrimSpace(grids[i].Name)] = &grids[i]
	}
	return c
}

// Level resolves a level by name.
func (c *ReferenceCatalog) Level(name string) (*Level, bool) {
	l, ok := c.levels[name]
	return l, ok
}

// Grid resolves a grid by name.
func (c *ReferenceCatalog) Grid(name string) (*Grid, bool) {
	g, ok := c.grids[name]
	return g, ok
}

// LevelCount returns the number of distinct level names.
func (c *ReferenceCatalog) LevelCount() int { return len(c.levels) }

// GridCount returns the number of distinct grid names.
func (c *ReferenceCatalog) GridCount() int { return len(c.grids) }

// TypeCatalog indexes column types by their normalized family|type key.
type TypeCatalog struct {
	types map[string]*ColumnType
}

// NewTypeCatalog indexes types, skipping entries with an empty family or
// type name. Types sharing a key collapse to the last one seen.
func NewTypeCatalog(types []ColumnType) *TypeCatalog {
	c := &TypeCatalog{types: make(map[string]*ColumnType, len(types))}
	for i := range types {
		key := TypeKey(types[i].Family, types[i].Name)
		if key == "" {
			continue
		}
		c.types[key] = &types[i]
	}
	return c
}

// TypeKey builds the catalog key for a family/type pair. It returns "" when
// either part is empty after normalization.
func TypeKey(family, name string) string {
	f := normalizeName(family)
	n := normalizeName(name)
	if f == "" || n == "" {
		return ""
	}
	return f + "|" + n
}

func normalizeName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Find resolves a type by exact normalized key.
func (c *TypeCatalog) Find(family, name string) (*ColumnType, bool) {
	key := TypeKey(family, name)
	if key == "" {
		return nil, false
	}
	t, ok := c.types[key]
	return t, ok
}

// Len returns the number of indexed types.
func (c *TypeCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.types)
}

// Keys returns all catalog keys in sorted order.
func (c *TypeCatalog) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.types))
	for k := range c.types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
