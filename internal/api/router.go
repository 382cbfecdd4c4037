package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// The public surface (scan redirects, image serving) is mounted separately
// by the caller; see Handler.ScanRedirect and Handler.ServeImage.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Codes CRUD.
	r.Get("/codes", h.ListCodes)
	r.Post("/codes", h.CreateCode)
	r.Get("/codes/{id}", h.GetCode)
	r.Put("/codes/{id}", h.UpdateCode)
	r.Delete("/codes/{id}", h.DeleteCode)

	// Board: search, sort, filters.
	r.Get("/board", h.GetBoard)
	r.Put("/board/search", h.SetSearch)
	r.Put("/board/sort", h.SetSort)
	r.Put("/board/filters/{key}", h.SetFilter)
	r.Delete("/board/filters/{key}", h.ResetFilter)
	r.Delete("/board/filters", h.ResetAllFilters)

	// Views (addressed by index; "selected" is registered before the
	// index routes so it never parses as one).
	r.Post("/board/views", h.CreateView)
	r.Put("/board/views/selected", h.SelectView)
	r.Patch("/board/views/{index}", h.RenameView)
	r.Post("/board/views/{index}/duplicate", h.DuplicateView)
	r.Delete("/board/views/{index}", h.DeleteView)

	// Editor.
	r.Get("/editor", h.GetEditor)
	r.Post("/editor/load", h.LoadEditor)
	r.Put("/editor/fields", h.SetEditorField)
	r.Put("/editor/colors/{surface}", h.SetEditorColor)
	r.Post("/editor/product", h.PickProduct)
	r.Post("/editor/save", h.SaveEditor)
	r.Delete("/editor", h.DeleteEditor)

	// Rendered-image upload (auth-protected).
	r.Post("/images", h.UploadImage)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
