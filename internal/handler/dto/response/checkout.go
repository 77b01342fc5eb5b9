package response

import (
	"time"

	"checkout-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type SessionResponse struct {
	ID         uuid.UUID          `json:"id"`
	Status     string             `json:"status"`
	Order      OrderResponse      `json:"order"`
	Totals     TotalsResponse     `json:"totals"`
	Account    AccountResponse    `json:"account"`
	Redemption RedemptionResponse `json:"redemption"`
	FailReason string             `json:"failReason,omitempty"`
	Result     *ResultResponse    `json:"result,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

type OrderResponse struct {
	ID       uuid.UUID          `json:"id"`
	Currency string             `json:"currency"`
	Items    []LineItemResponse `json:"items"`
}

type LineItemResponse struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unitAmount"`
	Quantity   int64  `json:"quantity"`
	Amount     int64  `json:"amount"`
}

type TotalsResponse struct {
	SubTotal            int64 `json:"subTotal"`
	Tax                 int64 `json:"tax"`
	Fee                 int64 `json:"fee"`
	TotalBeforeDiscount int64 `json:"totalBeforeDiscount"`
	Discount            int64 `json:"discount"`
	TotalToPay          int64 `json:"totalToPay"`
}

type AccountResponse struct {
	PointsBalance  int64 `json:"pointsBalance"`
	PointsRedeemed int64 `json:"pointsRedeemed"`
	LifetimePoints int64 `json:"lifetimePoints"`
}

type RedemptionResponse struct {
	Enabled           bool   `json:"enabled"`
	RequestedPoints   string `json:"requestedPoints"`
	AppliedPoints     int64  `json:"appliedPoints"`
	ValidationMessage string `json:"validationMessage,omitempty"`
}

type ResultResponse struct {
	OrderRef      string `json:"orderRef"`
	AmountCharged int64  `json:"amountCharged"`
	PointsApplied int64  `json:"pointsApplied"`
}

func FromSessionView(v *queries.SessionView) *SessionResponse {
	items := make([]LineItemResponse, len(v.Order.Items))
	for i, it := range v.Order.Items {
		items[i] = LineItemResponse{
			SKU:        it.SKU,
			Name:       it.Name,
			UnitAmount: it.UnitAmount,
			Quantity:   it.Quantity,
			Amount:     it.Amount,
		}
	}

	resp := &SessionResponse{
		ID:     v.ID,
		Status: v.Status,
		Order: OrderResponse{
			ID:       v.Order.ID,
			Currency: v.Order.Currency,
			Items:    items,
		},
		Totals: TotalsResponse{
			SubTotal:            v.Totals.SubTotal,
			Tax:                 v.Totals.Tax,
			Fee:                 v.Totals.Fee,
			TotalBeforeDiscount: v.Totals.TotalBeforeDiscount,
			Discount:            v.Totals.Discount,
			TotalToPay:          v.Totals.TotalToPay,
		},
		Account: AccountResponse{
			PointsBalance:  v.Account.PointsBalance,
			PointsRedeemed: v.Account.PointsRedeemed,
			LifetimePoints: v.Account.LifetimePoints,
		},
		Redemption: RedemptionResponse{
			Enabled:           v.Redemption.Enabled,
			RequestedPoints:   v.Redemption.RequestedPoints,
			AppliedPoints:     v.Redemption.AppliedPoints,
			ValidationMessage: v.Redemption.ValidationMessage,
		},
		FailReason: v.FailReason,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}

	if v.Result != nil {
		resp.Result = &ResultResponse{
			OrderRef:      v.Result.OrderRef,
			AmountCharged: v.Result.AmountCharged,
			PointsApplied: v.Result.PointsApplied,
		}
	}
	return resp
}
