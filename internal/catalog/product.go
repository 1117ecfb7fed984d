package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidProduct = errors.New("invalid product")

type Variant struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Sizes       []Variant `json:"sizes"`
	Images      []string  `json:"images"`
	Featured    bool      `json:"featured"`
}

// Variant returns the variant with the given size label.
func (p Product) Variant(size string) (Variant, bool) {
	for _, v := range p.Sizes {
		if v.Size == size {
			return v, true
		}
	}
	return Variant{}, false
}

// Thumbnail is the first image reference, or "" when the product has none.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Validate checks the invariants a product must hold before it can be sold:
// required text fields, at least one variant, unique size labels and
// non-negative prices.
func (p Product) Validate() error {
	const op = "Product.Validate"

	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%s: %w: name is required", op, ErrInvalidProduct)
	case strings.TrimSpace(p.Description) == "":
		return fmt.Errorf("%s: %w: description is required", op, ErrInvalidProduct)
	case strings.TrimSpace(p.Category) == "":
		return fmt.Errorf("%s: %w: category is required", op, ErrInvalidProduct)
	case len(p.Sizes) == 0:
		return fmt.Errorf("%s: %w: at least one size is required", op, ErrInvalidProduct)
	}

	seen := make(map[string]struct{}, len(p.Sizes))
	for _, v := range p.Sizes {
		if strings.TrimSpace(v.Size) == "" {
			return fmt.Errorf("%s: %w: size label is required", op, ErrInvalidProduct)
		}
		if v.Price < 0 {
			return fmt.Errorf("%s: %w: size %q has a negative price", op, ErrInvalidProduct, v.Size)
		}
		if _, dup := seen[v.Size]; dup {
			return fmt.Errorf("%s: %w: duplicate size %q", op, ErrInvalidProduct, v.Size)
		}
		seen[v.Size] = struct{}{}
	}
	return nil
}
