package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northgard/sigil/internal/apperr"
	"github.com/northgard/sigil/internal/color"
	"github.com/northgard/sigil/internal/form"
	"github.com/northgard/sigil/internal/models"
)

// editorState assembles the EditorState response from the live editor.
func (h *Handler) editorState() EditorState {
	snap := h.editor.Snapshot()
	return EditorState{
		ID:      h.editor.ID(),
		Dirty:   h.editor.Dirty(),
		Fields:  snap.Fields,
		Product: snap.Product,
		FgColor: snap.FgColor,
		BgColor: snap.BgColor,
	}
}

// GetEditor handles GET /api/editor.
func (h *Handler) GetEditor(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editorState())
}

// LoadEditor handles POST /api/editor/load. An empty id resets the editor
// to a blank creation form; otherwise the stored code becomes the new
// baseline and dirty clears.
func (h *Handler) LoadEditor(w http.ResponseWriter, r *http.Request) {
	var req LoadEditorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	if req.ID == "" {
		h.editor.Load(models.Code{})
		writeJSON(w, http.StatusOK, h.editorState())
		return
	}

	c, err := h.st.Get(r.Context(), req.ID)
	if err != nil {
		writeError(w, apperr.Store("get", err))
		return
	}
	h.editor.Load(*c)
	writeJSON(w, http.StatusOK, h.editorState())
}

// SetEditorField handles PUT /api/editor/fields.
func (h *Handler) SetEditorField(w http.ResponseWriter, r *http.Request) {
	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Key != form.FieldTitle && req.Key != form.FieldDestination {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown field: "+req.Key))
		return
	}
	h.editor.SetField(req.Key, req.Value)
	writeJSON(w, http.StatusOK, h.editorState())
}

// SetEditorColor handles PUT /api/editor/colors/{surface} where surface is
// "foreground" or "background". The body is an HSV tuple.
func (h *Handler) SetEditorColor(w http.ResponseWriter, r *http.Request) {
	surface := form.Surface(chi.URLParam(r, "surface"))
	if surface != form.Foreground && surface != form.Background {
		writeJSON(w, http.StatusBadRequest, errorBody("surface must be foreground or background"))
		return
	}
	var hsv color.HSV
	if err := json.NewDecoder(r.Body).Decode(&hsv); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.editor.SetColor(surface, hsv)
	writeJSON(w, http.StatusOK, h.editorState())
}

// PickProduct handles POST /api/editor/product. A JSON null body means the
// picker was cancelled and nothing changes; otherwise the product fields
// are overwritten as a unit.
func (h *Handler) PickProduct(w http.ResponseWriter, r *http.Request) {
	var p *models.ProductRef
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.editor.PickProduct(p)
	writeJSON(w, http.StatusOK, h.editorState())
}

// SaveEditor handles POST /api/editor/save. Validation failures come back
// as a per-field map; store failures leave the working state intact so the
// client can retry.
func (h *Handler) SaveEditor(w http.ResponseWriter, r *http.Request) {
	wasNew := h.editor.ID() == ""
	saved, err := h.editor.Save(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if wasNew {
		h.publishCodeEvent("created", saved.ID)
	} else {
		h.publishCodeEvent("updated", saved.ID)
	}
	writeJSON(w, http.StatusOK, h.codeDetail(*saved))
}

// DeleteEditor handles DELETE /api/editor: deletes the loaded code and
// resets the form.
func (h *Handler) DeleteEditor(w http.ResponseWriter, r *http.Request) {
	id := h.editor.ID()
	if err := h.editor.Delete(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.publishCodeEvent("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
