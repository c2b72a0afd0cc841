// AngelaMos | 2026
// repository.go

package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/reviewboard/internal/core"
)

type Repository interface {
	CreateReview(ctx context.Context, review *Review) error
	GetReview(ctx context.Context, titleID, reviewID int64) (*Review, error)
	UpdateReview(ctx context.Context, review *Review) error
	DeleteReview(ctx context.Context, titleID, reviewID int64) error
	ListReviews(
		ctx context.Context,
		titleID int64,
		params ListParams,
	) ([]Review, int, error)

	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, reviewID, commentID int64) (*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, reviewID, commentID int64) error
	ListComments(
		ctx context.Context,
		reviewID int64,
		params ListParams,
	) ([]Comment, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const reviewSelect = `
	SELECT r.id, r.title_id, r.author_id, u.username AS author_username,
	       r.text, r.score, r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.author_id`

const commentSelect = `
	SELECT c.id, c.review_id, c.author_id, u.username AS author_username,
	       c.text, c.created_at, c.updated_at
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func (r *repository) CreateReview(
	ctx context.Context,
	review *Review,
) error {
	query := `
		INSERT INTO reviews (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, review, query,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create review: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *repository) GetReview(
	ctx context.Context,
	titleID, reviewID int64,
) (*Review, error) {
	query := reviewSelect + ` WHERE r.id = $1 AND r.title_id = $2`

	var review Review
	err := r.db.GetContext(ctx, &review, query, reviewID, titleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get review: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &review, nil
}

func (r *repository) UpdateReview(ctx context.Context, review *Review) error {
	query := `
		UPDATE reviews
		SET text = $2, score = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &review.UpdatedAt, query,
		review.ID,
		review.Text,
		review.Score,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update review: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}

	return nil
}

func (r *repository) DeleteReview(
	ctx context.Context,
	titleID, reviewID int64,
) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = $1 AND title_id = $2`,
		reviewID, titleID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete review: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListReviews(
	ctx context.Context,
	titleID int64,
	params ListParams,
) ([]Review, int, error) {
	params.Normalize()

	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM reviews WHERE title_id = $1`, titleID)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	query := reviewSelect + `
		WHERE r.title_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`

	var reviews []Review
	err = r.db.SelectContext(ctx, &reviews, query,
		titleID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *repository) CreateComment(
	ctx context.Context,
	comment *Comment,
) error {
	query := `
		INSERT INTO comments (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, comment, query,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *repository) GetComment(
	ctx context.Context,
	reviewID, commentID int64,
) (*Comment, error) {
	query := commentSelect + ` WHERE c.id = $1 AND c.review_id = $2`

	var comment Comment
	err := r.db.GetContext(ctx, &comment, query, commentID, reviewID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get comment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &comment, nil
}

func (r *repository) UpdateComment(
	ctx context.Context,
	comment *Comment,
) error {
	query := `
		UPDATE comments
		SET text = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &comment.UpdatedAt, query,
		comment.ID,
		comment.Text,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update comment: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}

	return nil
}

func (r *repository) DeleteComment(
	ctx context.Context,
	reviewID, commentID int64,
) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1 AND review_id = $2`,
		commentID, reviewID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete comment: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListComments(
	ctx context.Context,
	reviewID int64,
	params ListParams,
) ([]Comment, int, error) {
	params.Normalize()

	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM comments WHERE review_id = $1`, reviewID)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	query := commentSelect + `
		WHERE c.review_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	var comments []Comment
	err = r.db.SelectContext(ctx, &comments, query,
		reviewID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	return comments, total, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
