// AngelaMos | 2026
// handler.go

package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/reviewboard/internal/core"
	"github.com/carterperez-dev/reviewboard/internal/middleware"
	"github.com/carterperez-dev/reviewboard/internal/policy"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts the nested review and comment resources under
// /titles/{titleID}.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/titles/{titleID}/reviews", func(r chi.Router) {
		r.Get("/", h.ListReviews)
		r.Post("/", h.CreateReview)
		r.Get("/{reviewID}", h.GetReview)
		r.Patch("/{reviewID}", h.UpdateReview)
		r.Delete("/{reviewID}", h.DeleteReview)

		r.Route("/{reviewID}/comments", func(r chi.Router) {
			r.Get("/", h.ListComments)
			r.Post("/", h.CreateComment)
			r.Get("/{commentID}", h.GetComment)
			r.Patch("/{commentID}", h.UpdateComment)
			r.Delete("/{commentID}", h.DeleteComment)
		})
	})
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.ReadOnlyOrAuthenticated(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateReview(r.Context(), titleID, actor, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "title")
		case errors.Is(err, ErrAlreadyReviewed):
			core.BadRequest(w, "you have already reviewed this title")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, resp)
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}
	reviewID, ok := parseID(w, r, "reviewID", "review")
	if !ok {
		return
	}

	resp, err := h.service.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		h.writeError(w, err, "review")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.ReadOnlyOrAuthenticated(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}
	reviewID, ok := parseID(w, r, "reviewID", "review")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.UpdateReview(
		r.Context(), titleID, reviewID, actor, req)
	if err != nil {
		h.writeError(w, err, "review")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.ReadOnlyOrAuthenticated(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}
	reviewID, ok := parseID(w, r, "reviewID", "review")
	if !ok {
		return
	}

	err := h.service.DeleteReview(r.Context(), titleID, reviewID, actor)
	if err != nil {
		h.writeError(w, err, "review")
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}

	params := parseListParams(r)

	reviews, total, err := h.service.ListReviews(r.Context(), titleID, params)
	if err != nil {
		h.writeError(w, err, "title")
		return
	}

	core.Paginated(w, reviews, params.Page, params.PageSize, total)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.ReadOnlyOrAuthenticated(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}
	reviewID, ok := parseID(w, r, "reviewID", "review")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateComment(
		r.Context(), titleID, reviewID, actor, req)
	if err != nil {
		h.writeError(w, err, "review")
		return
	}

	core.Created(w, resp)
}

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}
	reviewID, ok := parseID(w, r, "reviewID", "review")
	if !ok {
		return
	}
	commentID, ok := parseID(w, r, "commentID", "comment")
	if !ok {
		return
	}

	resp, err := h.service.GetComment(
		r.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.writeError(w, err, "comment")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.ReadOnlyOrAuthenticated(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}
	reviewID, ok := parseID(w, r, "reviewID", "review")
	if !ok {
		return
	}
	commentID, ok := parseID(w, r, "commentID", "comment")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.UpdateComment(
		r.Context(), titleID, reviewID, commentID, actor, req)
	if err != nil {
		h.writeError(w, err, "comment")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.ReadOnlyOrAuthenticated(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}
	reviewID, ok := parseID(w, r, "reviewID", "review")
	if !ok {
		return
	}
	commentID, ok := parseID(w, r, "commentID", "comment")
	if !ok {
		return
	}

	err := h.service.DeleteComment(
		r.Context(), titleID, reviewID, commentID, actor)
	if err != nil {
		h.writeError(w, err, "comment")
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseID(w, r, "titleID", "title")
	if !ok {
		return
	}
	reviewID, ok := parseID(w, r, "reviewID", "review")
	if !ok {
		return
	}

	params := parseListParams(r)

	comments, total, err := h.service.ListComments(
		r.Context(), titleID, reviewID, params)
	if err != nil {
		h.writeError(w, err, "review")
		return
	}

	core.Paginated(w, comments, params.Page, params.PageSize, total)
}

func (h *Handler) writeError(
	w http.ResponseWriter,
	err error,
	resource string,
) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrUnauthorized), errors.Is(err, core.ErrForbidden):
		core.PermissionError(w, err)
	default:
		core.InternalServerError(w, err)
	}
}

func parseListParams(r *http.Request) ListParams {
	var params ListParams
	params.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	params.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	params.Normalize()
	return params
}

func parseID(
	w http.ResponseWriter,
	r *http.Request,
	param, resource string,
) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		core.NotFound(w, resource)
		return 0, false
	}
	return id, true
}
