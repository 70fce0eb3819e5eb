package checks

import (
	"fmt"
	"reflect"
	"strings"

	"column-sync/core/database"
	"column-sync/feature/columns/models"

	"gorm.io/gorm"
)

// SchemaReport is the result of a schema integrity check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// typeFamilies maps a model field kind to the substrings accepted in the
// database column type. MySQL and sqlite spell the same kind differently.
var typeFamilies = map[reflect.Kind][]string{
	reflect.Int64:   {"int"},
	reflect.Float64: {"double", "real", "float", "decimal"},
	reflect.String:  {"char", "text"},
	reflect.Bool:    {"bool", "tinyint", "numeric"},
}

// CheckSchema verifies the column store tables using the GORM models as the
// source of truth.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models.All() {
		typ := reflect.TypeOf(model).Elem()
		tabler, ok := model.(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", typ.Name())
		}
		tableName := tabler.TableName()

		tbl := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		if !database.TableExists(db, tableName) {
			tbl.Status = "missing"
			report.Tables[tableName] = tbl
			report.Matched = false
			continue
		}
		tbl.Exists = true

		actual, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}
		actualMap := make(map[string]database.ColumnInfo, len(actual))
		for _, col := range actual {
			actualMap[col.Field] = col
		}

		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			colName := parseGormColumn(field.Tag.Get("gorm"))
			if colName == "" {
				continue
			}

			col, exists := actualMap[colName]
			if !exists {
				tbl.MissingColumns = append(tbl.MissingColumns, colName)
				tbl.Status = "error"
				report.Matched = false
				continue
			}

			if !typeMatches(field.Type.Kind(), col.Type) {
				tbl.TypeMismatches = append(tbl.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", colName, field.Type.Kind(), col.Type))
				tbl.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[tableName] = tbl
	}

	return report, nil
}

// typeMatches is a soft check: unknown kinds and empty database types pass.
func typeMatches(kind reflect.Kind, dbType string) bool {
	accepted, ok := typeFamilies[kind]
	if !ok || dbType == "" {
		return true
	}
	for _, a := range accepted {
		if strings.Contains(dbType, a) {
			return true
		}
	}
	return false
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
