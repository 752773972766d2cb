// internal/domain/category/entity.go
package category

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidCategory = errors.New("category: invalid")
	ErrNotFound        = errors.New("category: not found")
)

// All is the sentinel gallery filter value meaning "no category filter".
const All = "all"

// DefaultBadgeColor is used when a product references a category name that
// no longer exists (deletion does not cascade to products).
const DefaultBadgeColor = "#f0f0f0"

// Category is a managed badge category (Firestore collection "categories").
// Name is unique by convention only; Color is a hex string ("#rrggbb").
type Category struct {
	ID    string `json:"id" firestore:"id,omitempty"`
	Name  string `json:"name" firestore:"name"`
	Color string `json:"color" firestore:"color"`
}

func (c *Category) Validate() error {
	if c == nil {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Color) == "" {
		return ErrInvalidCategory
	}
	return nil
}

// ColorFor returns the badge color for a category name, falling back to
// DefaultBadgeColor when the name is unknown (orphaned product reference).
func ColorFor(name string, categories []Category) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Color
		}
	}
	return DefaultBadgeColor
}

// ContrastColor picks a readable text color ("black" or "white") for a badge
// painted with the given hex background.
//
// Accepts 3- or 6-digit hex, with or without the leading "#". Perceptual
// luminance = 0.299R + 0.587G + 0.114B over 0..255 channels; >= 128 means the
// background is light, so black text. Malformed input falls back to "white"
// rather than erroring.
func ContrastColor(hex string) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return "white"
	}
	luminance := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luminance >= 128 {
		return "black"
	}
	return "white"
}

func parseHexColor(hex string) (r, g, b uint8, ok bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(h) {
	case 3:
		// expand "abc" -> "aabbcc"
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
		// as is
	default:
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
