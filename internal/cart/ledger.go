package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// MaxQuantity caps the quantity of a single line item.
const MaxQuantity = 999

// Subtotal is Price * Quantity.
func (it LineItem) Subtotal() float64 {
	return it.subtotal().InexactFloat64()
}

func (it LineItem) subtotal() decimal.Decimal {
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type EventKind string

const (
	EventAdded           EventKind = "added"
	EventQuantityUpdated EventKind = "quantity_updated"
	EventRemoved         EventKind = "removed"
)

type Event struct {
	Kind EventKind `json:"kind"`
	Item LineItem  `json:"item"`
}

// Notifier receives ledger events as they happen.
type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Ledger is an insertion-ordered set of line items keyed by (product, size).
// It is not safe for concurrent use; see Session.
type Ledger struct {
	items    []LineItem
	notifier Notifier
	newID    func() string
}

// NewLedger returns an empty ledger. A nil notifier discards events.
func NewLedger(n Notifier) *Ledger {
	return &Ledger{notifier: n, newID: uuid.NewString}
}

// AddItem merges into the line item with the same product and size, keeping
// its original unit price, or appends a new one. Quantities are capped at
// MaxQuantity.
func (l *Ledger) AddItem(productID, productName, size string, quantity int, unitPrice float64, image string) {
	quantity = min(quantity, MaxQuantity)
	for i := range l.items {
		it := &l.items[i]
		if it.ProductID == productID && it.Size == size {
			it.Quantity = min(it.Quantity+quantity, MaxQuantity)
			l.notify(EventQuantityUpdated, *it)
			return
		}
	}

	it := LineItem{
		ID:          l.newID(),
		ProductID:   productID,
		ProductName: productName,
		Size:        size,
		Quantity:    quantity,
		Price:       unitPrice,
		Image:       image,
	}
	l.items = append(l.items, it)
	l.notify(EventAdded, it)
}

// UpdateQuantity sets the quantity of a line item. Quantities below 1 are
// ignored rather than treated as removal; larger ones are capped at
// MaxQuantity.
func (l *Ledger) UpdateQuantity(itemID string, quantity int) {
	if quantity < 1 {
		return
	}
	if i := l.index(itemID); i >= 0 {
		l.items[i].Quantity = min(quantity, MaxQuantity)
	}
}

// RemoveItem drops a line item. Unknown ids are ignored.
func (l *Ledger) RemoveItem(itemID string) {
	i := l.index(itemID)
	if i < 0 {
		return
	}
	removed := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.notify(EventRemoved, removed)
}

func (l *Ledger) Clear() {
	l.items = nil
}

// Items returns a copy of the line items in insertion order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Item(itemID string) (LineItem, bool) {
	if i := l.index(itemID); i >= 0 {
		return l.items[i], true
	}
	return LineItem{}, false
}

func (l *Ledger) Len() int {
	return len(l.items)
}

func (l *Ledger) TotalItemCount() int {
	n := 0
	for _, it := range l.items {
		n += it.Quantity
	}
	return n
}

func (l *Ledger) TotalPrice() float64 {
	return Total(l.items)
}

// Total sums Price * Quantity over items.
func Total(items []LineItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.subtotal())
	}
	return sum.InexactFloat64()
}

func (l *Ledger) index(itemID string) int {
	for i := range l.items {
		if l.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (l *Ledger) notify(kind EventKind, it LineItem) {
	if l.notifier == nil {
		return
	}
	l.notifier.Notify(Event{Kind: kind, Item: it})
}
