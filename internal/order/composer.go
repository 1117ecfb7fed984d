package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"poshak-storefront/internal/cart"
)

// EmptyOrder is what Compose returns for a cart without line items.
const EmptyOrder = ""

const (
	DefaultGreeting = "Hello, I want to purchase the following products:"
	separator       = "-------------------------------"
)

type Composer struct {
	Greeting string
}

func NewComposer(greeting string) Composer {
	if strings.TrimSpace(greeting) == "" {
		greeting = DefaultGreeting
	}
	return Composer{Greeting: greeting}
}

// Compose renders the line items as a numbered order message followed by a
// subtotal/total summary. Amounts are bare magnitudes.
func (c Composer) Compose(items []cart.LineItem) string {
	if len(items) == 0 {
		return EmptyOrder
	}

	var b strings.Builder
	b.WriteString(c.Greeting)
	b.WriteString("\n\n")

	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.ProductName)
		fmt.Fprintf(&b, "   Size: %s\n", it.Size)
		fmt.Fprintf(&b, "   Quantity: %d\n", it.Quantity)
		b.WriteString(separator)
		b.WriteString("\n")
	}

	subtotal := FormatAmount(cart.Total(items))
	b.WriteString("Order Summary:\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", subtotal)
	fmt.Fprintf(&b, "Total: %s\n", subtotal)

	return b.String()
}

// FormatAmount prints an amount without trailing zeros or exponent notation.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// WhatsAppLink builds a click-to-chat deep link carrying message as the
// prefilled text. Non-digits in phone are dropped.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + digits,
		RawQuery: "text=" + url.QueryEscape(message),
	}
	return u.String()
}
