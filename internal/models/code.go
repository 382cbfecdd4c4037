// Package models defines the domain types for sigil.
package models

import (
	"fmt"
	"time"
)

// Destination is the coarse category a code points at.
type Destination string

const (
	// DestinationProduct sends scanners to the product page.
	DestinationProduct Destination = "product"
	// DestinationCart sends scanners to a cart pre-filled with one variant.
	DestinationCart Destination = "cart"
)

// ProductRef identifies the shop product a code is linked to.
type ProductRef struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	Handle    string `json:"handle"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url,omitempty"`
	ImageAlt  string `json:"image_alt,omitempty"`
}

// Empty reports whether no product has been picked yet.
func (p ProductRef) Empty() bool {
	return p.ID == ""
}

// Code represents one managed QR code. ID is empty until the store
// assigns one on create. Colors are persisted as 6-digit hex strings.
type Code struct {
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title"`
	Destination Destination `json:"destination"`
	Product     ProductRef  `json:"product"`
	FgHex       string      `json:"fg_hex"`
	BgHex       string      `json:"bg_hex"`
	Scans       int64       `json:"scans"`
	ImagePath   string      `json:"image_path,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DestinationURL returns the public URL a scan redirects to.
// Cart destinations use the shop's permalink form (variant:quantity).
func (c Code) DestinationURL(shopBase string) string {
	switch c.Destination {
	case DestinationCart:
		return fmt.Sprintf("%s/cart/%s:1", shopBase, c.Product.VariantID)
	default:
		return fmt.Sprintf("%s/products/%s", shopBase, c.Product.Handle)
	}
}

// ScanURL returns the URL encoded into the rendered QR image.
func (c Code) ScanURL(publicBase string) string {
	return fmt.Sprintf("%s/s/%s", publicBase, c.ID)
}
