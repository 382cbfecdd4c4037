package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/northgard/sigil/internal/apperr"
	"github.com/northgard/sigil/internal/assets"
	"github.com/northgard/sigil/internal/checksum"
	"github.com/northgard/sigil/internal/color"
	"github.com/northgard/sigil/internal/models"
	"github.com/northgard/sigil/internal/screen"
	"github.com/northgard/sigil/internal/sse"
	"github.com/northgard/sigil/internal/store"
)

const maxBodyBytes = 1 << 20

// Handler holds API route handlers.
type Handler struct {
	st     store.Store
	board  *screen.Board
	editor *screen.Editor
	broker *sse.Broker
	images *assets.FS

	shopBase   string
	publicBase string
}

// NewHandler creates a Handler. broker may be nil when live updates are
// disabled; publishes become no-ops.
func NewHandler(st store.Store, board *screen.Board, editor *screen.Editor, broker *sse.Broker, images *assets.FS, shopBase, publicBase string) *Handler {
	return &Handler{
		st:         st,
		board:      board,
		editor:     editor,
		broker:     broker,
		images:     images,
		shopBase:   strings.TrimRight(shopBase, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (h *Handler) publishCodeEvent(kind, id string) {
	if h.broker != nil {
		h.broker.PublishCodeEvent(kind, id)
	}
}

// codeDetail decorates a stored row with the derived URLs and checksum.
func (h *Handler) codeDetail(c models.Code) CodeDetail {
	d := CodeDetail{
		Code:           c,
		DestinationURL: c.DestinationURL(h.shopBase),
		ScanURL:        c.ScanURL(h.publicBase),
		Checksum:       checksum.Sum(c),
	}
	if c.ImagePath != "" {
		d.ImageURL = "/images/" + c.ID + ".png"
	}
	return d
}

// codeFromPayload builds the store row from a request body, normalizing the
// colors to the canonical lowercase hex form (or the per-surface default
// when absent).
func codeFromPayload(req CodePayload) models.Code {
	return models.Code{
		Title:       req.Title,
		Destination: models.Destination(req.Destination),
		Product:     req.Product,
		FgHex:       color.ToHex(color.ToHSV(req.FgHex, color.DefaultForeground)),
		BgHex:       color.ToHex(color.ToHSV(req.BgHex, color.DefaultBackground)),
	}
}

// ListCodes handles GET /api/codes. The result is the board's projection
// of the full collection: selected view, applied filters, search query,
// and sort order all take effect here.
//
//	@Summary		List codes through the board projection
//	@Tags			codes
//	@Produce		json
//	@Success		200	{object}	CodeListResponse
//	@Security		BearerAuth
//	@Router			/codes [get]
func (h *Handler) ListCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.st.List(r.Context())
	if err != nil {
		writeError(w, apperr.Store("list", err))
		return
	}
	projected := h.board.Project(codes)
	items := make([]CodeDetail, 0, len(projected))
	for _, c := range projected {
		items = append(items, h.codeDetail(c))
	}
	writeJSON(w, http.StatusOK, CodeListResponse{Codes: items, Total: len(items)})
}

// GetCode handles GET /api/codes/{id}.
//
//	@Summary		Get a single code by id
//	@Tags			codes
//	@Produce		json
//	@Param			id	path		string	true	"Code id"
//	@Success		200	{object}	CodeDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/codes/{id} [get]
func (h *Handler) GetCode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.st.Get(r.Context(), id)
	if err != nil {
		writeError(w, apperr.Store("get", err))
		return
	}
	writeJSON(w, http.StatusOK, h.codeDetail(*c))
}

// CreateCode handles POST /api/codes.
//
//	@Summary		Create a new code
//	@Tags			codes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CodePayload	true	"Code to create"
//	@Success		201		{object}	CodeDetail
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/codes [post]
func (h *Handler) CreateCode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CodePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	c := codeFromPayload(req)
	if err := screen.ValidateCode(c); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.st.Create(r.Context(), c)
	if err != nil {
		writeError(w, apperr.Store("create", err))
		return
	}
	h.publishCodeEvent("created", created.ID)
	writeJSON(w, http.StatusCreated, h.codeDetail(*created))
}

// UpdateCode handles PUT /api/codes/{id} with optimistic concurrency: when
// an If-Match header is present it must equal the checksum of the stored
// row, otherwise the write is rejected with 409.
//
//	@Summary		Update a code
//	@Tags			codes
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string		true	"Code id"
//	@Param			If-Match	header		string		false	"Checksum the edit was loaded with"
//	@Param			body		body		CodePayload	true	"Updated fields"
//	@Success		200			{object}	CodeDetail
//	@Failure		404			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Failure		422			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/codes/{id} [put]
func (h *Handler) UpdateCode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	id := chi.URLParam(r, "id")

	existing, err := h.st.Get(r.Context(), id)
	if err != nil {
		writeError(w, apperr.Store("get", err))
		return
	}

	// Standard ETag format wraps the value in quotes.
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)
	if ifMatch != "" && ifMatch != checksum.Sum(*existing) {
		writeError(w, apperr.ErrConflict)
		return
	}

	var req CodePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	c := codeFromPayload(req)
	c.ID = id
	if err := screen.ValidateCode(c); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.st.Update(r.Context(), c)
	if err != nil {
		writeError(w, apperr.Store("update", err))
		return
	}
	h.publishCodeEvent("updated", updated.ID)
	writeJSON(w, http.StatusOK, h.codeDetail(*updated))
}

// DeleteCode handles DELETE /api/codes/{id}.
//
//	@Summary		Delete a code
//	@Tags			codes
//	@Param			id	path	string	true	"Code id"
//	@Success		204	"Code deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/codes/{id} [delete]
func (h *Handler) DeleteCode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.st.Delete(r.Context(), id); err != nil {
		writeError(w, apperr.Store("delete", err))
		return
	}
	if h.images != nil {
		// Best effort; the watcher reconciles leftovers anyway.
		if err := h.images.Delete(id + ".png"); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Debug("image cleanup skipped", slog.String("id", id), slog.String("error", err.Error()))
		}
	}
	h.publishCodeEvent("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// ScanRedirect handles GET /s/{id}, the public endpoint encoded into every
// rendered QR image. It bumps the scan counter and redirects the scanner
// to the code's destination.
//
//	@Summary		Resolve a scanned code
//	@Tags			public
//	@Param			id	path	string	true	"Code id"
//	@Success		302	"Redirect to the destination URL"
//	@Failure		404	{object}	errResponse
//	@Router			/s/{id} [get]
func (h *Handler) ScanRedirect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.st.Get(r.Context(), id)
	if err != nil {
		writeError(w, apperr.Store("get", err))
		return
	}
	scans, err := h.st.RecordScan(r.Context(), id)
	if err != nil {
		writeError(w, apperr.Store("record scan", err))
		return
	}
	if h.broker != nil {
		h.broker.Publish(sse.Event{Type: "code.scanned", Data: map[string]any{"id": id, "scans": scans}})
	}
	http.Redirect(w, r, c.DestinationURL(h.shopBase), http.StatusFound)
}
