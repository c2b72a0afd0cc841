// AngelaMos | 2026
// dto.go

package review

import "time"

type CreateReviewRequest struct {
	Text  string `json:"text"  validate:"required,max=4000"`
	Score int    `json:"score" validate:"required,gte=1,lte=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text,omitempty"  validate:"omitempty,max=4000"`
	Score *int    `json:"score,omitempty" validate:"omitempty,gte=1,lte=10"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text,omitempty" validate:"omitempty,max=4000"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
}

type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) Normalize() {
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

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToReviewResponse(rv *Review) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		Author:    rv.AuthorUsername,
		Text:      rv.Text,
		Score:     rv.Score,
		CreatedAt: rv.CreatedAt,
	}
}

func ToReviewResponseList(reviews []Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		responses = append(responses, ToReviewResponse(&rv))
	}
	return responses
}

func ToCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Author:    c.AuthorUsername,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func ToCommentResponseList(comments []Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, ToCommentResponse(&c))
	}
	return responses
}
