package order

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoLineItems     = errors.New("order must have at least one line item")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
	ErrInvalidAmount   = errors.New("unit amount cannot be negative")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// LineItem is a priced order line. Amounts are in minor currency units.
type LineItem struct {
	sku        string
	name       string
	unitAmount int64
	quantity   int64
}

func NewLineItem(sku, name string, unitAmount, quantity int64) (LineItem, error) {
	if unitAmount < 0 {
		return LineItem{}, ErrInvalidAmount
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{
		sku:        strings.TrimSpace(sku),
		name:       strings.TrimSpace(name),
		unitAmount: unitAmount,
		quantity:   quantity,
	}, nil
}

func (li LineItem) SKU() string {
	return li.sku
}

func (li LineItem) Name() string {
	return li.name
}

func (li LineItem) UnitAmount() int64 {
	return li.unitAmount
}

func (li LineItem) Quantity() int64 {
	return li.quantity
}

func (li LineItem) Amount() int64 {
	return li.unitAmount * li.quantity
}

// Order is immutable for the lifetime of a checkout session.
type Order struct {
	id       uuid.UUID
	currency string
	items    []LineItem
}

func NewOrder(id uuid.UUID, currency string, items []LineItem) (*Order, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}
	copied := make([]LineItem, len(items))
	copy(copied, items)
	return &Order{
		id:       id,
		currency: currency,
		items:    copied,
	}, nil
}

func (o *Order) ID() uuid.UUID {
	return o.id
}

func (o *Order) Currency() string {
	return o.currency
}

func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Subtotal is the sum of line amounts before tax, fee and discount.
func (o *Order) Subtotal() int64 {
	var sum int64
	for _, li := range o.items {
		sum += li.Amount()
	}
	return sum
}
