package api

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/northgard/sigil/internal/apperr"
)

const maxImageBytes = 10 << 20 // 10 MB

// ServeImage handles GET /images/{filename}. Rendered images are public:
// anything scanning the code could fetch them anyway.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.images.AbsPath(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// UploadImage handles POST /api/images (multipart/form-data, field "file").
// The filename must be "<code id>.png" for an existing code; the uploaded
// image is linked to that code. This is the push path for renderers that
// cannot write to the watched directory themselves.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	name := header.Filename
	id, ok := strings.CutSuffix(name, ".png")
	if !ok || id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("filename must be <code id>.png"))
		return
	}
	if _, err := h.st.Get(r.Context(), id); err != nil {
		writeError(w, apperr.Store("get", err))
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read upload"))
		return
	}
	if err := h.images.Write(name, content); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := h.st.SetImagePath(r.Context(), id, name); err != nil {
		writeError(w, apperr.Store("link image", err))
		return
	}
	h.publishCodeEvent("rendered", id)

	writeJSON(w, http.StatusCreated, ImageUploadResponse{
		Filename: name,
		Size:     int64(len(content)),
		URL:      "/images/" + name,
	})
}
