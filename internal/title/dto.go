// AngelaMos | 2026
// dto.go

package title

import "math"

type CreateTitleRequest struct {
	Name        string   `json:"name"        validate:"required,max=256"`
	Year        int      `json:"year"        validate:"required"`
	Description string   `json:"description" validate:"omitempty,max=4000"`
	Genres      []string `json:"genre"       validate:"required,min=1,dive,slug"`
	Category    string   `json:"category"    validate:"omitempty,slug"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty"        validate:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=4000"`
	Genres      *[]string `json:"genre,omitempty"       validate:"omitempty,min=1,dive,slug"`
	Category    *string   `json:"category,omitempty"    validate:"omitempty,slug"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description string            `json:"description"`
	Rating      *int              `json:"rating"`
	Category    *CategoryResponse `json:"category"`
	Genres      []GenreResponse   `json:"genre"`
}

type ListTitlesParams struct {
	Page     int
	PageSize int
	Category string
	Genre    string
	Name     string
	Year     *int
}

func (p *ListTitlesParams) Normalize() {
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

func (p *ListTitlesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToTitleResponse(t *Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Rating:      roundRating(t.Rating),
		Genres:      make([]GenreResponse, 0, len(t.Genres)),
	}

	if t.CategorySlug != nil && t.CategoryName != nil {
		resp.Category = &CategoryResponse{
			Name: *t.CategoryName,
			Slug: *t.CategorySlug,
		}
	}

	for _, g := range t.Genres {
		resp.Genres = append(resp.Genres, GenreResponse{
			Name: g.Name,
			Slug: g.Slug,
		})
	}

	return resp
}

func ToTitleResponseList(titles []Title) []TitleResponse {
	responses := make([]TitleResponse, 0, len(titles))
	for _, t := range titles {
		responses = append(responses, ToTitleResponse(&t))
	}
	return responses
}

// roundRating collapses the average score to the nearest whole number,
// keeping nil for unrated titles.
func roundRating(avg *float64) *int {
	if avg == nil {
		return nil
	}
	rounded := int(math.Round(*avg))
	return &rounded
}
