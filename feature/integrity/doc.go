// Package integrity provides health checks of the infrastructure the column
// sync depends on.
//
// # Checks Provided
//
//   - Structure: the storage bucket exists and holds the imports/ folder and
//     the archive prefix (history/ by default).
//   - Schema: the connected database holds the levels, grids, column_types
//     and columns tables with the columns and types the GORM models declare.
//
// Both checks can repair what they find: structure creates the bucket and
// folder markers, schema runs the store migration.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check (supports ?fix=true).
package integrity
