// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
)

// ===============================
// Errors
// ===============================

var (
	ErrInvalidProduct = errors.New("product: invalid")
	ErrNotFound       = errors.New("product: not found")
)

// MaxImages is the number of image slots a product carries (primary + 2 extra).
const MaxImages = 3

// Product is a catalog document (Firestore collection "products").
//
// Field notes:
//   - Image should equal Images[0] when images exist. This is a convention,
//     not a constraint enforced by the backend; Normalize() repairs it.
//   - Active is a pointer: documents created before the visibility flag was
//     introduced have no "active" field, and those must stay visible.
type Product struct {
	ID          string   `json:"id" firestore:"id,omitempty"`
	Image       string   `json:"image" firestore:"image"`
	Images      []string `json:"images" firestore:"images"`
	Brand       string   `json:"brand" firestore:"brand"`
	Type        string   `json:"type" firestore:"type"`
	Category    string   `json:"category" firestore:"category"`
	Price       string   `json:"price,omitempty" firestore:"price"`
	Description string   `json:"description" firestore:"description"`
	Badge       string   `json:"badge,omitempty" firestore:"badge"`
	BadgeColor  string   `json:"badgeColor,omitempty" firestore:"badgeColor"`
	Sizes       []string `json:"sizes" firestore:"sizes"`
	Active      *bool    `json:"active,omitempty" firestore:"active"`
	IsNew       bool     `json:"isNew" firestore:"isNew"`
}

// Visible reports whether the product should appear on the public site.
// A missing active flag means visible (legacy documents).
func (p Product) Visible() bool {
	return p.Active == nil || *p.Active
}

// Normalize trims free-text fields, drops empty image slots and keeps the
// Image == Images[0] convention. Safe to call on zero values.
func (p *Product) Normalize() {
	if p == nil {
		return
	}

	p.Brand = strings.TrimSpace(p.Brand)
	p.Type = strings.TrimSpace(p.Type)
	p.Category = strings.TrimSpace(p.Category)
	p.Price = strings.TrimSpace(p.Price)
	p.Description = strings.TrimSpace(p.Description)
	p.Badge = strings.TrimSpace(p.Badge)
	p.BadgeColor = strings.TrimSpace(p.BadgeColor)

	imgs := make([]string, 0, len(p.Images))
	for _, u := range p.Images {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		imgs = append(imgs, u)
		if len(imgs) == MaxImages {
			break
		}
	}
	p.Images = imgs

	p.Image = strings.TrimSpace(p.Image)
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	} else if p.Image != "" {
		p.Images = []string{p.Image}
	}

	if p.Sizes == nil {
		p.Sizes = []string{}
	}
}

// Validate checks the fields the admin form requires.
func (p *Product) Validate() error {
	if p == nil {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(p.Brand) == "" ||
		strings.TrimSpace(p.Type) == "" ||
		strings.TrimSpace(p.Category) == "" ||
		strings.TrimSpace(p.Description) == "" {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(p.Image) == "" && len(p.Images) == 0 {
		return ErrInvalidProduct
	}
	return nil
}

// BoolPtr is a small helper for the Active field.
func BoolPtr(v bool) *bool { return &v }
