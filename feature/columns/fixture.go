package columns

import (
	"fmt"
	"os"

	"column-sync/feature/columns/models"

	"github.com/goccy/go-yaml"
)

// LoadFixture reads a YAML model fixture:
//
//	levels:
//	  - {id: 1, name: L0, elevation: 0}
//	grids:
//	  - {id: 1, name: A, start_x: 0, start_y: 0, end_x: 0, end_y: 30}
//	types:
//	  - {id: 1, family: RC sq, type: 500mm, active: true}
//	columns: []
func LoadFixture(path string) (*models.Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML model fixture.
func ParseFixture(data []byte) (*models.Fixture, error) {
	var f models.Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}
