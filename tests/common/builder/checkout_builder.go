//go:build unit || e2e

package builder

import (
	domcheckout "checkout-ledger/internal/domain/checkout"
	"checkout-ledger/internal/domain/ledger"
	"checkout-ledger/internal/domain/loyalty"
	domorder "checkout-ledger/internal/domain/order"
	"checkout-ledger/internal/pkg/clock"

	"github.com/google/uuid"
)

type lineItemSpec struct {
	SKU        string
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CheckoutBuilder assembles the order / account / session trio most tests
// need. Defaults reproduce the canonical order: subtotal 1000, 18% tax,
// 1.2% fee with a floor of 5.
type CheckoutBuilder struct {
	OrderID        uuid.UUID
	Currency       string
	Items          []lineItemSpec
	PointsBalance  int64
	PointsRedeemed int64
	LifetimePoints int64
	TaxRate        string
	FeeRate        string
	FeeMinUnits    int64
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		OrderID:  uuid.New(),
		Currency: "USD",
		Items: []lineItemSpec{
			{SKU: "SKU-001", Name: "Espresso Machine", UnitAmount: 250, Quantity: 2},
			{SKU: "SKU-002", Name: "Grinder", UnitAmount: 500, Quantity: 1},
		},
		PointsBalance:  500,
		PointsRedeemed: 0,
		LifetimePoints: 1200,
		TaxRate:        "0.18",
		FeeRate:        "0.012",
		FeeMinUnits:    5,
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) WithItems(items ...lineItemSpec) *CheckoutBuilder {
	b.Items = items
	return b
}

func (b *CheckoutBuilder) WithSingleItem(unitAmount, quantity int64) *CheckoutBuilder {
	b.Items = []lineItemSpec{{SKU: "SKU-001", Name: "Test Item", UnitAmount: unitAmount, Quantity: quantity}}
	return b
}

func (b *CheckoutBuilder) WithBalance(balance int64) *CheckoutBuilder {
	b.PointsBalance = balance
	return b
}

// Build methods
func (b *CheckoutBuilder) BuildOrder() (*domorder.Order, error) {
	items := make([]domorder.LineItem, 0, len(b.Items))
	for _, it := range b.Items {
		li, err := domorder.NewLineItem(it.SKU, it.Name, it.UnitAmount, it.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return domorder.NewOrder(b.OrderID, b.Currency, items)
}

func (b *CheckoutBuilder) BuildAccount() (loyalty.Account, error) {
	return loyalty.NewAccount(b.PointsBalance, b.PointsRedeemed, b.LifetimePoints)
}

func (b *CheckoutBuilder) BuildCalculator() (*ledger.Calculator, error) {
	rates, err := ledger.NewRates(b.TaxRate, b.FeeRate, b.FeeMinUnits)
	if err != nil {
		return nil, err
	}
	return ledger.NewCalculator(rates), nil
}

// BuildReadySession produces an activated session owned by the given clock.
func (b *CheckoutBuilder) BuildReadySession(clk clock.Clock) (*domcheckout.Session, error) {
	ord, err := b.BuildOrder()
	if err != nil {
		return nil, err
	}
	account, err := b.BuildAccount()
	if err != nil {
		return nil, err
	}
	calc, err := b.BuildCalculator()
	if err != nil {
		return nil, err
	}

	services := &domcheckout.Services{Clock: clk, Calculator: calc}
	session := domcheckout.NewSession(services, uuid.New())
	if err := session.Activate(ord, account); err != nil {
		return nil, err
	}
	return session, nil
}
