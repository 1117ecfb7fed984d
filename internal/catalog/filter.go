package catalog

import "strings"

// All is the selector value that disables a category, size or price filter.
const All = "all"

type PriceBracket string

const (
	BracketAll        PriceBracket = All
	BracketUnder1500  PriceBracket = "under-1500"
	Bracket1500To3000 PriceBracket = "1500-3000"
	BracketOver3000   PriceBracket = "over-3000"
)

// Contains reports whether price falls inside the bracket. The middle
// bracket is inclusive on both ends. Unknown brackets behave like BracketAll.
func (b PriceBracket) Contains(price float64) bool {
	switch b {
	case BracketUnder1500:
		return price < 1500
	case Bracket1500To3000:
		return price >= 1500 && price <= 3000
	case BracketOver3000:
		return price > 3000
	default:
		return true
	}
}

// MatchesAny is the product-level predicate: true when at least one variant
// is priced inside the bracket.
func (b PriceBracket) MatchesAny(p Product) bool {
	if !b.restricts() {
		return true
	}
	for _, v := range p.Sizes {
		if b.Contains(v.Price) {
			return true
		}
	}
	return false
}

func (b PriceBracket) restricts() bool {
	switch b {
	case BracketUnder1500, Bracket1500To3000, BracketOver3000:
		return true
	}
	return false
}

type Criteria struct {
	Search   string       `form:"search" json:"search"`
	Category string       `form:"category" json:"category"`
	Size     string       `form:"size" json:"size"`
	Price    PriceBracket `form:"price" json:"price"`
}

// DefaultCriteria is the reset state of the storefront filters.
func DefaultCriteria() Criteria {
	return Criteria{Category: All, Size: All, Price: BracketAll}
}

// Normalize fills empty selectors with All.
func (c Criteria) Normalize() Criteria {
	if c.Category == "" {
		c.Category = All
	}
	if c.Size == "" {
		c.Size = All
	}
	if c.Price == "" {
		c.Price = BracketAll
	}
	return c
}

func (c Criteria) Match(p Product) bool {
	return c.matchSearch(p) &&
		c.matchCategory(p) &&
		c.matchSize(p) &&
		c.Price.MatchesAny(p)
}

func (c Criteria) matchSearch(p Product) bool {
	if c.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.Search))
}

func (c Criteria) matchCategory(p Product) bool {
	return c.Category == "" || c.Category == All || p.Category == c.Category
}

func (c Criteria) matchSize(p Product) bool {
	if c.Size == "" || c.Size == All {
		return true
	}
	_, ok := p.Variant(c.Size)
	return ok
}

// Filter returns the products matching every criterion, keeping input order.
func Filter(products []Product, c Criteria) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if c.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// VariantsInBracket narrows the variant list of a single product to those
// priced inside the bracket. It is independent of MatchesAny: Filter never
// trims variants, callers apply this where a narrowed list is wanted.
func VariantsInBracket(p Product, b PriceBracket) []Variant {
	if !b.restricts() {
		return p.Sizes
	}
	out := make([]Variant, 0, len(p.Sizes))
	for _, v := range p.Sizes {
		if b.Contains(v.Price) {
			out = append(out, v)
		}
	}
	return out
}

// Categories lists the category selector options: All, then each distinct
// category in first-seen order.
func Categories(products []Product) []string {
	return distinct(products, func(p Product) []string { return []string{p.Category} })
}

// Sizes lists the size selector options: All, then each distinct size label
// in first-seen order.
func Sizes(products []Product) []string {
	return distinct(products, func(p Product) []string {
		labels := make([]string, len(p.Sizes))
		for i, v := range p.Sizes {
			labels[i] = v.Size
		}
		return labels
	})
}

func distinct(products []Product, labels func(Product) []string) []string {
	out := []string{All}
	seen := make(map[string]struct{})
	for _, p := range products {
		for _, l := range labels(p) {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// Featured returns up to limit featured products in catalog order.
// A non-positive limit means no limit.
func Featured(products []Product, limit int) []Product {
	out := make([]Product, 0)
	for _, p := range products {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
