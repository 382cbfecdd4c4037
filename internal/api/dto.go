package api

import (
	"github.com/northgard/sigil/internal/color"
	"github.com/northgard/sigil/internal/listing"
	"github.com/northgard/sigil/internal/models"
)

// CodePayload is the request body for creating or updating a code.
type CodePayload struct {
	Title       string            `json:"title" example:"Spring sale banner" validate:"required"`
	Destination string            `json:"destination" example:"product" validate:"required"`
	Product     models.ProductRef `json:"product" validate:"required"`
	FgHex       string            `json:"fg_hex" example:"#1a2b3c"`
	BgHex       string            `json:"bg_hex" example:"#ffffff"`
}

// CodeDetail is the full code response type: the stored row plus the
// derived URLs and the checksum used for optimistic concurrency.
type CodeDetail struct {
	models.Code
	DestinationURL string `json:"destination_url" validate:"required"`
	ScanURL        string `json:"scan_url" validate:"required"`
	ImageURL       string `json:"image_url,omitempty"`
	Checksum       string `json:"checksum" validate:"required"`
}

// CodeListResponse wraps the projected code listing.
type CodeListResponse struct {
	Codes []CodeDetail `json:"codes" validate:"required"`
	Total int          `json:"total" example:"12" validate:"required"`
}

// AppliedFilter is one entry in the applied-filters summary.
type AppliedFilter struct {
	Key   string `json:"key" example:"scans" validate:"required"`
	Label string `json:"label" example:"Scans" validate:"required"`
}

// BoardState is the full listing-surface state.
type BoardState struct {
	Views          []string         `json:"views" validate:"required"`
	SelectedView   int              `json:"selected_view" validate:"required"`
	Query          string           `json:"query"`
	Sort           listing.SortSpec `json:"sort" validate:"required"`
	AppliedFilters []AppliedFilter  `json:"applied_filters" validate:"required"`
}

// EditorState is the detail form's working state.
type EditorState struct {
	ID      string            `json:"id,omitempty"`
	Dirty   bool              `json:"dirty"`
	Fields  map[string]string `json:"fields" validate:"required"`
	Product models.ProductRef `json:"product"`
	FgColor color.HSV         `json:"fg_color" validate:"required"`
	BgColor color.HSV         `json:"bg_color" validate:"required"`
}

// SearchRequest sets the board's free-text query.
type SearchRequest struct {
	Query string `json:"query" example:"banner"`
}

// FilterValueRequest sets one filter criterion. Range criteria read Min
// and Max (a nil Max means unbounded); text criteria read Value.
type FilterValueRequest struct {
	Min   *int64  `json:"min,omitempty"`
	Max   *int64  `json:"max,omitempty"`
	Value *string `json:"value,omitempty"`
}

// ViewNameRequest carries a view name for create and rename.
type ViewNameRequest struct {
	Name string `json:"name" example:"High traffic" validate:"required"`
}

// SelectViewRequest moves the view selection.
type SelectViewRequest struct {
	Index int `json:"index" example:"1" validate:"required"`
}

// LoadEditorRequest loads a code into the editor. An empty id loads a
// blank creation form.
type LoadEditorRequest struct {
	ID string `json:"id,omitempty" example:"8d4f..."`
}

// SetFieldRequest updates one scalar form field.
type SetFieldRequest struct {
	Key   string `json:"key" example:"title" validate:"required"`
	Value string `json:"value" example:"Spring sale banner"`
}

// ImageUploadResponse is returned after a rendered image upload.
type ImageUploadResponse struct {
	Filename string `json:"filename" example:"8d4f.png" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/images/8d4f.png" validate:"required"`
}
