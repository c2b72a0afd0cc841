// AngelaMos | 2026
// entity.go

package taxonomy

import "time"

// Term is a single entry in either classification table. Categories and
// genres share the exact same shape, so the package stores both as terms
// and only the table differs.
type Term struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}
