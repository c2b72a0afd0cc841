// AngelaMos | 2026
// entity.go

package title

import (
	"time"
)

// Title carries the aggregate rating and the joined classification data
// alongside the base columns. Rating is the average review score and is
// nil until the first review lands.
type Title struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Year         int       `db:"year"`
	Description  string    `db:"description"`
	CategoryID   *int64    `db:"category_id"`
	CategoryName *string   `db:"category_name"`
	CategorySlug *string   `db:"category_slug"`
	Rating       *float64  `db:"rating"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`

	Genres []Genre `db:"-"`
}

// Genre is the joined slice of a genre row a title references.
type Genre struct {
	TitleID int64  `db:"title_id"`
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Slug    string `db:"slug"`
}
