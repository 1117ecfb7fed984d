package catalog

// ResolvePrice returns the unit price shown for a product. A selected size
// that exists wins; otherwise the first variant inside the bracket, and
// finally the first variant. Products without variants resolve to 0.
func ResolvePrice(p Product, selectedSize string, b PriceBracket) float64 {
	if selectedSize != "" {
		if v, ok := p.Variant(selectedSize); ok {
			return v.Price
		}
	}
	if vs := VariantsInBracket(p, b); len(vs) > 0 {
		return vs[0].Price
	}
	if len(p.Sizes) > 0 {
		return p.Sizes[0].Price
	}
	return 0
}
