package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// maxReportedErrors is the largest error list rendered. Longer lists
	// suppress the section entirely.
	// TODO: show the last maxReportedErrors entries instead of dropping the
	// section once report consumers no longer depend on the current layout.
	maxReportedErrors = 10

	// maxTypeSamples caps the available-types hint.
	maxTypeSamples = 10
)

// Render formats a run as the text report shown to users. The types
// catalog feeds the troubleshooting hint printed when a family/type could
// not be resolved.
func Render(run *Run, types *TypeCatalog) string {
	var sb strings.Builder

	sb.WriteString("CSV Sync Complete\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&sb, "Rows read  : %d\n", run.Total)
	fmt.Fprintf(&sb, "Created    : %d\n", run.Created)
	fmt.Fprintf(&sb, "Updated    : %d\n", run.Updated)
	fmt.Fprintf(&sb, "Deleted    : %d\n", run.Deleted)
	fmt.Fprintf(&sb, "Skipped    : %d\n", run.Skipped)

	if run.Skipped > 0 && len(run.Reasons) > 0 {
		sb.WriteString("\nSkip reasons:\n")
		for _, reason := range sortedKeys(run.Reasons) {
			fmt.Fprintf(&sb, "  - %s: %d\n", reason, run.Reasons[reason])
		}
	}

	if n := len(run.Errors); n > 0 && n <= maxReportedErrors {
		sb.WriteString("\nRecent errors:\n")
		for _, e := range run.Errors {
			fmt.Fprintf(&sb, "  - %s\n", e)
		}
	}

	if _, ok := run.Reasons[ReasonTypeNotFound]; ok {
		keys := types.Keys()
		fmt.Fprintf(&sb, "\nAvailable column types (%d found):\n", len(keys))
		for i, key := range keys {
			if i >= maxTypeSamples {
				break
			}
			family, name, _ := strings.Cut(key, "|")
			fmt.Fprintf(&sb, "  - '%s' : '%s'\n", family, name)
		}
		if len(keys) > maxTypeSamples {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(keys)-maxTypeSamples)
		}
	}

	sb.WriteString("\nColumns use 'Mark' parameter for tracking (column_id)\n")
	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
