// Package specrepo persists and retrieves named Specification sources,
// grounded on the teacher's internal/vocabulary grammar-rule repository
// pattern: a sqlx-backed PostgreSQL implementation behind a small
// interface, with a JSON-file-backed stand-in for local development.
package specrepo

import "time"

// Record is one stored version of a named specification's raw source
// text, before parsing. Specifications are versioned by name: saving
// again under the same name adds a new version rather than overwriting.
type Record struct {
	SpecID    string    `json:"spec_id" db:"spec_id"`
	Name      string    `json:"name" db:"name"`
	Source    string    `json:"source" db:"source"`
	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
