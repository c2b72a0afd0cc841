// AngelaMos | 2026
// service.go

package taxonomy

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateTermRequest,
) (*TermResponse, error) {
	term := &Term{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Create(ctx, term); err != nil {
		return nil, err
	}

	resp := ToTermResponse(term)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}

func (s *Service) List(
	ctx context.Context,
	params ListTermsParams,
) ([]TermResponse, int, error) {
	terms, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return ToTermResponseList(terms), total, nil
}
