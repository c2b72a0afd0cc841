// AngelaMos | 2026
// service.go

package title

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/reviewboard/internal/core"
	"github.com/carterperez-dev/reviewboard/internal/taxonomy"
)

// ErrBadReference marks a category or genre slug that does not resolve.
// Handlers report it as a validation failure, not a missing resource.
var ErrBadReference = errors.New("unknown category or genre slug")

// ErrFutureYear rejects titles dated after the current year.
var ErrFutureYear = errors.New("year cannot be in the future")

type Service struct {
	repo       Repository
	categories taxonomy.Repository
	genres     taxonomy.Repository
}

func NewService(
	repo Repository,
	categories taxonomy.Repository,
	genres taxonomy.Repository,
) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateTitleRequest,
) (*TitleResponse, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	title := &Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Create(ctx, title, genreIDs); err != nil {
		return nil, err
	}

	return s.Get(ctx, title.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*TitleResponse, error) {
	title, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToTitleResponse(title)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateTitleRequest,
) (*TitleResponse, error) {
	title, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}

	var genreIDs []int64
	if req.Genres != nil {
		genreIDs, err = s.resolveGenres(ctx, *req.Genres)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, title, genreIDs); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListTitlesParams,
) ([]TitleResponse, int, error) {
	titles, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return ToTitleResponseList(titles), total, nil
}

func (s *Service) resolveCategory(
	ctx context.Context,
	slug string,
) (*int64, error) {
	if slug == "" {
		return nil, nil
	}

	term, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("category %q: %w", slug, ErrBadReference)
		}
		return nil, err
	}

	return &term.ID, nil
}

func (s *Service) resolveGenres(
	ctx context.Context,
	slugs []string,
) ([]int64, error) {
	ids := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		term, err := s.genres.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, fmt.Errorf("genre %q: %w", slug, ErrBadReference)
			}
			return nil, err
		}
		ids = append(ids, term.ID)
	}
	return ids, nil
}

func validateYear(year int) error {
	if year > time.Now().Year() {
		return fmt.Errorf("year %d: %w", year, ErrFutureYear)
	}
	return nil
}
