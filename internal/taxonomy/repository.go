// AngelaMos | 2026
// repository.go

package taxonomy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/reviewboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, term *Term) error
	GetBySlug(ctx context.Context, slug string) (*Term, error)
	DeleteBySlug(ctx context.Context, slug string) error
	List(ctx context.Context, params ListTermsParams) ([]Term, int, error)
}

type repository struct {
	db    core.DBTX
	table string
}

// The table name is baked in by the constructors below, never taken from
// input, so interpolating it into queries is safe.
func NewCategoryRepository(db core.DBTX) Repository {
	return &repository{db: db, table: "categories"}
}

func NewGenreRepository(db core.DBTX) Repository {
	return &repository{db: db, table: "genres"}
}

func (r *repository) Create(ctx context.Context, term *Term) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at`, r.table)

	err := r.db.GetContext(ctx, term, query, term.Name, term.Slug)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create %s term: %w", r.table, core.ErrDuplicateKey)
		}
		return fmt.Errorf("create %s term: %w", r.table, err)
	}

	return nil
}

func (r *repository) GetBySlug(
	ctx context.Context,
	slug string,
) (*Term, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, created_at
		FROM %s
		WHERE slug = $1`, r.table)

	var term Term
	err := r.db.GetContext(ctx, &term, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s term: %w", r.table, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s term: %w", r.table, err)
	}

	return &term, nil
}

func (r *repository) DeleteBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE slug = $1`, r.table)

	result, err := r.db.ExecContext(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("delete %s term: %w", r.table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s term: %w", r.table, err)
	}

	if rows == 0 {
		return fmt.Errorf("delete %s term: %w", r.table, core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListTermsParams,
) ([]Term, int, error) {
	params.Normalize()

	whereClause := "TRUE"
	var args []any
	argIdx := 1

	if params.Search != "" {
		whereClause = fmt.Sprintf("name ILIKE $%d", argIdx)
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s", r.table, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count %s terms: %w", r.table, err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, slug, created_at
		FROM %s
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		r.table, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var terms []Term
	if err := r.db.SelectContext(ctx, &terms, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list %s terms: %w", r.table, err)
	}

	return terms, total, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
