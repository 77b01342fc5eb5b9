package ledger

import (
	"errors"

	"checkout-ledger/internal/domain/order"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRate      = errors.New("rate must be a non-negative decimal")
	ErrNegativeFeeMin   = errors.New("minimum fee cannot be negative")
	ErrNegativeRedeemed = errors.New("applied points cannot be negative")
)

// Rates are the fixed checkout constants: tax rate, processing fee rate and
// the fee floor in minor currency units.
type Rates struct {
	taxRate decimal.Decimal
	feeRate decimal.Decimal
	feeMin  int64
}

func NewRates(taxRate, feeRate string, feeMinUnits int64) (Rates, error) {
	tax, err := decimal.NewFromString(taxRate)
	if err != nil || tax.IsNegative() {
		return Rates{}, ErrInvalidRate
	}
	fee, err := decimal.NewFromString(feeRate)
	if err != nil || fee.IsNegative() {
		return Rates{}, ErrInvalidRate
	}
	if feeMinUnits < 0 {
		return Rates{}, ErrNegativeFeeMin
	}
	return Rates{taxRate: tax, feeRate: fee, feeMin: feeMinUnits}, nil
}

// Totals is the derived money breakdown for one order and one applied
// redemption. All amounts are in minor currency units.
type Totals struct {
	SubTotal            int64 `json:"subTotal"`
	Tax                 int64 `json:"tax"`
	Fee                 int64 `json:"fee"`
	TotalBeforeDiscount int64 `json:"totalBeforeDiscount"`
	Discount            int64 `json:"discount"`
	TotalToPay          int64 `json:"totalToPay"`
}

type Calculator struct {
	rates Rates
}

func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// ComputeTotals derives the payable amount for an order with appliedPoints
// redeemed at 1 point = 1 minor unit. Pure and deterministic.
//
// Invariants: TotalToPay >= 0 and Discount <= TotalBeforeDiscount. The
// validator already caps applied points at the pre-discount total, but the
// clamps here must survive regardless of what the caller passes.
func (c *Calculator) ComputeTotals(o *order.Order, appliedPoints int64) (Totals, error) {
	if appliedPoints < 0 {
		return Totals{}, ErrNegativeRedeemed
	}

	subTotal := o.Subtotal()
	tax := roundHalfUp(subTotal, c.rates.taxRate)
	fee := roundHalfUp(subTotal, c.rates.feeRate)
	if fee < c.rates.feeMin {
		fee = c.rates.feeMin
	}
	totalBefore := subTotal + tax + fee

	discount := appliedPoints
	if discount > totalBefore {
		discount = totalBefore
	}

	totalToPay := totalBefore - discount
	if totalToPay < 0 {
		totalToPay = 0
	}

	return Totals{
		SubTotal:            subTotal,
		Tax:                 tax,
		Fee:                 fee,
		TotalBeforeDiscount: totalBefore,
		Discount:            discount,
		TotalToPay:          totalToPay,
	}, nil
}

// roundHalfUp rounds amount*rate to the nearest whole minor unit, halves up.
// decimal.Round is half-away-from-zero, which is half-up for non-negative
// amounts; line amounts are validated non-negative at construction.
func roundHalfUp(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}
