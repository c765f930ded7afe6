// schema.go embeds and executes the database schema.
//
// Schema files live under sql/ and run in alphabetical order (hence the
// numeric prefixes), keeping each table's definition self-contained and
// reviewable.

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

// execSchema executes every embedded .sql file in alphabetical order.
// Each file uses IF NOT EXISTS clauses so re-running is harmless.
func execSchema(db *sql.DB) error {
	entries, err := fs.ReadDir(schemas, "sql")
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		data, err := fs.ReadFile(schemas, "sql/"+e.Name())
		if err != nil {
			return fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("execute schema %s: %w", e.Name(), err)
		}
	}
	return nil
}
