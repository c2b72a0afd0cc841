// AngelaMos | 2026
// handler.go

package title

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

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/titles", func(r chi.Router) {
		r.Get("/", h.ListTitles)
		r.Post("/", h.CreateTitle)
		r.Get("/{titleID}", h.GetTitle)
		r.Patch("/{titleID}", h.UpdateTitle)
		r.Delete("/{titleID}", h.DeleteTitle)
	})
}

func (h *Handler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.AdminOrReadOnly(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	var req CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) GetTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTitleID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "title")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.AdminOrReadOnly(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	id, ok := parseTitleID(w, r)
	if !ok {
		return
	}

	var req UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if err := policy.AdminOrReadOnly(actor, false); err != nil {
		core.PermissionError(w, err)
		return
	}

	id, ok := parseTitleID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "title")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListTitles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ListTitlesParams{
		Category: q.Get("category"),
		Genre:    q.Get("genre"),
		Name:     q.Get("name"),
	}
	params.Page, _ = strconv.Atoi(q.Get("page"))
	params.PageSize, _ = strconv.Atoi(q.Get("page_size"))

	if yearStr := q.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			core.BadRequest(w, "year must be an integer")
			return
		}
		params.Year = &year
	}

	params.Normalize()

	titles, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, titles, params.Page, params.PageSize, total)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "title")
	case errors.Is(err, ErrBadReference), errors.Is(err, ErrFutureYear):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

func parseTitleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "titleID"), 10, 64)
	if err != nil {
		core.NotFound(w, "title")
		return 0, false
	}
	return id, true
}
