// AngelaMos | 2026
// dto.go

package taxonomy

type CreateTermRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type TermResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ListTermsParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p *ListTermsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListTermsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToTermResponse(t *Term) TermResponse {
	return TermResponse{
		Name: t.Name,
		Slug: t.Slug,
	}
}

func ToTermResponseList(terms []Term) []TermResponse {
	responses := make([]TermResponse, 0, len(terms))
	for _, t := range terms {
		responses = append(responses, ToTermResponse(&t))
	}
	return responses
}
