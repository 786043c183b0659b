// Package store exposes single-table query primitives over the catalog
// database. Cross-table composition (fan-out, joins in memory) lives in the
// service layer; every method here issues exactly one statement.
package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// Store runs catalog queries against a SQL database.
type Store struct {
	db *sql.DB
}

// New returns a store backed by the given connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// inArgs renders a placeholder list ($start, $start+1, ...) for an IN
// clause and the matching argument slice. Callers must never pass an empty
// id set; the empty case is short-circuited before the query is composed.
func inArgs(start int, ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", start+i)
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}

// likePattern wraps user text in a substring ILIKE pattern, escaping the
// pattern metacharacters so they match literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
