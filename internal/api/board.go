package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/northgard/sigil/internal/filters"
	"github.com/northgard/sigil/internal/listing"
)

// boardState assembles the BoardState response from the live board.
func (h *Handler) boardState() BoardState {
	vs := h.board.Views()
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	applied := []AppliedFilter{}
	for _, a := range h.board.AppliedFilters() {
		applied = append(applied, AppliedFilter{Key: a.Key, Label: a.Label})
	}
	return BoardState{
		Views:          names,
		SelectedView:   h.board.SelectedView(),
		Query:          h.board.Query(),
		Sort:           h.board.Sort(),
		AppliedFilters: applied,
	}
}

// GetBoard handles GET /api/board.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.boardState())
}

// SetSearch handles PUT /api/board/search.
func (h *Handler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.board.SetQuery(req.Query)
	writeJSON(w, http.StatusOK, h.boardState())
}

// SetSort handles PUT /api/board/sort.
func (h *Handler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req listing.SortSpec
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Field == "" {
		req.Field = listing.SortByTitle
	}
	if req.Direction != listing.Ascending && req.Direction != listing.Descending {
		writeJSON(w, http.StatusBadRequest, errorBody("direction must be ascending or descending"))
		return
	}
	h.board.SetSort(req)
	writeJSON(w, http.StatusOK, h.boardState())
}

// SetFilter handles PUT /api/board/filters/{key}. The body shape depends
// on the criterion: range filters take {"min": n, "max": n} with max
// optional (unbounded), text filters take {"value": "..."}.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req FilterValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	var value any
	if req.Value != nil {
		value = *req.Value
	} else {
		rng := filters.Range{Min: 0, Max: filters.NoMax}
		if req.Min != nil {
			rng.Min = *req.Min
		}
		if req.Max != nil {
			rng.Max = *req.Max
		}
		value = rng
	}

	if err := h.board.SetFilter(key, value); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.boardState())
}

// ResetFilter handles DELETE /api/board/filters/{key}.
func (h *Handler) ResetFilter(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.board.ResetFilter(key); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.boardState())
}

// ResetAllFilters handles DELETE /api/board/filters.
func (h *Handler) ResetAllFilters(w http.ResponseWriter, r *http.Request) {
	h.board.ResetAllFilters()
	writeJSON(w, http.StatusOK, h.boardState())
}

// viewIndex parses the {index} URL parameter.
func viewIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

// CreateView handles POST /api/board/views. Duplicate names are allowed;
// views are addressed by index, not name.
func (h *Handler) CreateView(w http.ResponseWriter, r *http.Request) {
	var req ViewNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	h.board.CreateView(req.Name)
	writeJSON(w, http.StatusCreated, h.boardState())
}

// RenameView handles PATCH /api/board/views/{index}.
func (h *Handler) RenameView(w http.ResponseWriter, r *http.Request) {
	idx, err := viewIndex(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid view index"))
		return
	}
	var req ViewNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if err := h.board.RenameView(idx, req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.boardState())
}

// DuplicateView handles POST /api/board/views/{index}/duplicate.
func (h *Handler) DuplicateView(w http.ResponseWriter, r *http.Request) {
	idx, err := viewIndex(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid view index"))
		return
	}
	if err := h.board.DuplicateView(idx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.boardState())
}

// DeleteView handles DELETE /api/board/views/{index}. Removing the last
// remaining view is rejected with 409.
func (h *Handler) DeleteView(w http.ResponseWriter, r *http.Request) {
	idx, err := viewIndex(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid view index"))
		return
	}
	if err := h.board.DeleteView(idx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.boardState())
}

// SelectView handles PUT /api/board/views/selected.
func (h *Handler) SelectView(w http.ResponseWriter, r *http.Request) {
	var req SelectViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.board.SelectView(req.Index); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.boardState())
}
