// AngelaMos | 2026
// handler.go

package taxonomy

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

// Handler serves both classification collections. Each gets the same
// three operations: public list, admin create, admin delete by slug.
type Handler struct {
	categories *Service
	genres     *Service
	validator  *validator.Validate
}

func NewHandler(categories, genres *Service) *Handler {
	return &Handler{
		categories: categories,
		genres:     genres,
		validator:  core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listTerms(h.categories))
		r.Post("/", h.createTerm(h.categories))
		r.Delete("/{slug}", h.deleteTerm(h.categories))
	})

	r.Route("/genres", func(r chi.Router) {
		r.Get("/", h.listTerms(h.genres))
		r.Post("/", h.createTerm(h.genres))
		r.Delete("/{slug}", h.deleteTerm(h.genres))
	})
}

func (h *Handler) listTerms(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := ListTermsParams{
			Search: r.URL.Query().Get("search"),
		}
		params.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
		params.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
		params.Normalize()

		terms, total, err := service.List(r.Context(), params)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}

		core.Paginated(w, terms, params.Page, params.PageSize, total)
	}
}

func (h *Handler) createTerm(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middleware.GetActor(r.Context())
		if err := policy.AdminOrReadOnly(actor, false); err != nil {
			core.PermissionError(w, err)
			return
		}

		var req CreateTermRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}

		if err := h.validator.Struct(req); err != nil {
			core.BadRequest(w, core.FormatValidationError(err))
			return
		}

		resp, err := service.Create(r.Context(), req)
		if err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				core.BadRequest(w, "slug already exists")
				return
			}
			core.InternalServerError(w, err)
			return
		}

		core.Created(w, resp)
	}
}

func (h *Handler) deleteTerm(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middleware.GetActor(r.Context())
		if err := policy.AdminOrReadOnly(actor, false); err != nil {
			core.PermissionError(w, err)
			return
		}

		slug := chi.URLParam(r, "slug")

		if err := service.Delete(r.Context(), slug); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				core.NotFound(w, "term")
				return
			}
			core.InternalServerError(w, err)
			return
		}

		core.NoContent(w)
	}
}
