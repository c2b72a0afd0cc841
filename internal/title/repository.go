// AngelaMos | 2026
// repository.go

package title

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/reviewboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, title *Title, genreIDs []int64) error
	GetByID(ctx context.Context, id int64) (*Title, error)
	Update(ctx context.Context, title *Title, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params ListTitlesParams) ([]Title, int, error)
}

// The repository takes the concrete pool rather than core.DBTX because
// create and update span two tables and run inside a transaction.
type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const titleSelect = `
	SELECT t.id, t.name, t.year, t.description, t.category_id,
	       c.name AS category_name, c.slug AS category_slug,
	       AVG(r.score) AS rating,
	       t.created_at, t.updated_at
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN reviews r ON r.title_id = t.id`

const titleGroupBy = `GROUP BY t.id, c.name, c.slug`

func (r *repository) Create(
	ctx context.Context,
	title *Title,
	genreIDs []int64,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO titles (name, year, description, category_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`

		err := tx.GetContext(ctx, title, query,
			title.Name,
			title.Year,
			title.Description,
			title.CategoryID,
		)
		if err != nil {
			return fmt.Errorf("create title: %w", err)
		}

		return insertGenreLinks(ctx, tx, title.ID, genreIDs)
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Title, error) {
	query := fmt.Sprintf("%s WHERE t.id = $1 %s", titleSelect, titleGroupBy)

	var title Title
	err := r.db.GetContext(ctx, &title, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get title: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get title: %w", err)
	}

	if err := r.attachGenres(ctx, []*Title{&title}); err != nil {
		return nil, err
	}

	return &title, nil
}

// Update rewrites the base columns and, when genreIDs is non-nil,
// replaces the genre links wholesale.
func (r *repository) Update(
	ctx context.Context,
	title *Title,
	genreIDs []int64,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE titles
			SET name = $2, year = $3, description = $4, category_id = $5,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`

		err := tx.GetContext(ctx, &title.UpdatedAt, query,
			title.ID,
			title.Name,
			title.Year,
			title.Description,
			title.CategoryID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update title: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update title: %w", err)
		}

		if genreIDs == nil {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM title_genres WHERE title_id = $1`, title.ID)
		if err != nil {
			return fmt.Errorf("clear genre links: %w", err)
		}

		return insertGenreLinks(ctx, tx, title.ID, genreIDs)
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete title: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete title: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete title: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListTitlesParams,
) ([]Title, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Category != "" {
		conditions = append(conditions,
			fmt.Sprintf("c.slug = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.Genre != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM title_genres tg
			JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $%d)`, argIdx))
		args = append(args, params.Genre)
		argIdx++
	}

	if params.Name != "" {
		conditions = append(conditions,
			fmt.Sprintf("t.name ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Name)+"%")
		argIdx++
	}

	if params.Year != nil {
		conditions = append(conditions,
			fmt.Sprintf("t.year = $%d", argIdx))
		args = append(args, *params.Year)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE %s`, whereClause)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		%s
		ORDER BY t.id ASC
		LIMIT $%d OFFSET $%d`,
		titleSelect, whereClause, titleGroupBy, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var titles []Title
	if err := r.db.SelectContext(ctx, &titles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	refs := make([]*Title, len(titles))
	for i := range titles {
		refs[i] = &titles[i]
	}
	if err := r.attachGenres(ctx, refs); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func insertGenreLinks(
	ctx context.Context,
	tx *sqlx.Tx,
	titleID int64,
	genreIDs []int64,
) error {
	for _, genreID := range genreIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO title_genres (title_id, genre_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			titleID, genreID)
		if err != nil {
			return fmt.Errorf("link genre %d: %w", genreID, err)
		}
	}
	return nil
}

func (r *repository) attachGenres(ctx context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(titles))
	byID := make(map[int64]*Title, len(titles))
	for _, t := range titles {
		t.Genres = []Genre{}
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	query, args, err := sqlx.In(`
		SELECT tg.title_id, g.id, g.name, g.slug
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id IN (?)
		ORDER BY g.name ASC`, ids)
	if err != nil {
		return fmt.Errorf("build genre query: %w", err)
	}
	query = r.db.Rebind(query)

	var genres []Genre
	if err := r.db.SelectContext(ctx, &genres, query, args...); err != nil {
		return fmt.Errorf("load genres: %w", err)
	}

	for _, g := range genres {
		t := byID[g.TitleID]
		t.Genres = append(t.Genres, g)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
