// AngelaMos | 2026
// service.go

package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/reviewboard/internal/core"
	"github.com/carterperez-dev/reviewboard/internal/policy"
	"github.com/carterperez-dev/reviewboard/internal/title"
)

// ErrAlreadyReviewed marks a second review by the same author on the
// same title.
var ErrAlreadyReviewed = errors.New("author already reviewed this title")

// TitleLookup is the slice of the title repository the review flow
// needs: parent existence checks before nested writes.
type TitleLookup interface {
	GetByID(ctx context.Context, id int64) (*title.Title, error)
}

type Service struct {
	repo   Repository
	titles TitleLookup
}

func NewService(repo Repository, titles TitleLookup) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
	}
}

// CreateReview files a review under a title. The author comes from the
// verified actor, never from the request body.
func (s *Service) CreateReview(
	ctx context.Context,
	titleID int64,
	actor policy.Actor,
	req CreateReviewRequest,
) (*ReviewResponse, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	review.AuthorUsername = actor.Username

	resp := ToReviewResponse(review)
	return &resp, nil
}

func (s *Service) GetReview(
	ctx context.Context,
	titleID, reviewID int64,
) (*ReviewResponse, error) {
	review, err := s.repo.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

func (s *Service) UpdateReview(
	ctx context.Context,
	titleID, reviewID int64,
	actor policy.Actor,
	req UpdateReviewRequest,
) (*ReviewResponse, error) {
	review, err := s.repo.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := policy.AuthorOrElevated(actor, review.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.UpdateReview(ctx, review); err != nil {
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

func (s *Service) DeleteReview(
	ctx context.Context,
	titleID, reviewID int64,
	actor policy.Actor,
) error {
	review, err := s.repo.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := policy.AuthorOrElevated(actor, review.AuthorID); err != nil {
		return err
	}

	return s.repo.DeleteReview(ctx, titleID, reviewID)
}

func (s *Service) ListReviews(
	ctx context.Context,
	titleID int64,
	params ListParams,
) ([]ReviewResponse, int, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.repo.ListReviews(ctx, titleID, params)
	if err != nil {
		return nil, 0, err
	}

	return ToReviewResponseList(reviews), total, nil
}

func (s *Service) CreateComment(
	ctx context.Context,
	titleID, reviewID int64,
	actor policy.Actor,
	req CreateCommentRequest,
) (*CommentResponse, error) {
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	comment.AuthorUsername = actor.Username

	resp := ToCommentResponse(comment)
	return &resp, nil
}

func (s *Service) GetComment(
	ctx context.Context,
	titleID, reviewID, commentID int64,
) (*CommentResponse, error) {
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.GetComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := ToCommentResponse(comment)
	return &resp, nil
}

func (s *Service) UpdateComment(
	ctx context.Context,
	titleID, reviewID, commentID int64,
	actor policy.Actor,
	req UpdateCommentRequest,
) (*CommentResponse, error) {
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.GetComment(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := policy.AuthorOrElevated(actor, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}

	resp := ToCommentResponse(comment)
	return &resp, nil
}

func (s *Service) DeleteComment(
	ctx context.Context,
	titleID, reviewID, commentID int64,
	actor policy.Actor,
) error {
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	comment, err := s.repo.GetComment(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := policy.AuthorOrElevated(actor, comment.AuthorID); err != nil {
		return err
	}

	return s.repo.DeleteComment(ctx, reviewID, commentID)
}

func (s *Service) ListComments(
	ctx context.Context,
	titleID, reviewID int64,
	params ListParams,
) ([]CommentResponse, int, error) {
	if _, err := s.repo.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.repo.ListComments(ctx, reviewID, params)
	if err != nil {
		return nil, 0, err
	}

	return ToCommentResponseList(comments), total, nil
}

func (s *Service) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("title %d: %w", titleID, core.ErrNotFound)
		}
		return err
	}
	return nil
}
