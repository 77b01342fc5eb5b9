package queries

import (
	"time"

	"checkout-ledger/internal/domain/checkout"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type SessionView struct {
	ID         uuid.UUID      `json:"id"`
	Status     string         `json:"status"`
	Order      OrderView      `json:"order"`
	Totals     TotalsView     `json:"totals"`
	Account    AccountView    `json:"account"`
	Redemption RedemptionView `json:"redemption"`
	FailReason string         `json:"fail_reason,omitempty"`
	Result     *ResultView    `json:"result,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type OrderView struct {
	ID       uuid.UUID      `json:"id"`
	Currency string         `json:"currency"`
	Items    []LineItemView `json:"items"`
}

type LineItemView struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int64  `json:"quantity"`
	Amount     int64  `json:"amount"`
}

type TotalsView struct {
	SubTotal            int64 `json:"sub_total"`
	Tax                 int64 `json:"tax"`
	Fee                 int64 `json:"fee"`
	TotalBeforeDiscount int64 `json:"total_before_discount"`
	Discount            int64 `json:"discount"`
	TotalToPay          int64 `json:"total_to_pay"`
}

type AccountView struct {
	PointsBalance  int64 `json:"points_balance"`
	PointsRedeemed int64 `json:"points_redeemed"`
	LifetimePoints int64 `json:"lifetime_points"`
}

type RedemptionView struct {
	Enabled           bool   `json:"enabled"`
	RequestedPoints   string `json:"requested_points"`
	AppliedPoints     int64  `json:"applied_points"`
	ValidationMessage string `json:"validation_message,omitempty"`
}

type ResultView struct {
	OrderRef      string `json:"order_ref"`
	AmountCharged int64  `json:"amount_charged"`
	PointsApplied int64  `json:"points_applied"`
}

// SessionReader is the read-side slice of the session store: serialized
// access to one live session.
type SessionReader interface {
	Within(sessionID uuid.UUID, fn func(session *checkout.Session) error) error
}

type CheckoutQueries interface {
	GetSession(sessionID uuid.UUID) (*SessionView, error)
}

type checkoutQueriesImpl struct {
	sessions SessionReader
}

func NewCheckoutQueries(sessions SessionReader) CheckoutQueries {
	return &checkoutQueriesImpl{sessions: sessions}
}

func (q *checkoutQueriesImpl) GetSession(sessionID uuid.UUID) (*SessionView, error) {
	var view *SessionView
	err := q.sessions.Within(sessionID, func(s *checkout.Session) error {
		view = buildSessionView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// buildSessionView snapshots the session while its lock is held; the view is
// safe to hand out afterwards.
func buildSessionView(s *checkout.Session) *SessionView {
	ord := s.Order()
	items := ord.Items()
	itemViews := make([]LineItemView, len(items))
	for i, li := range items {
		itemViews[i] = LineItemView{
			SKU:        li.SKU(),
			Name:       li.Name(),
			UnitAmount: li.UnitAmount(),
			Quantity:   li.Quantity(),
			Amount:     li.Amount(),
		}
	}

	totals := s.Totals()
	account := s.Account()
	intent := s.Intent()

	view := &SessionView{
		ID:     s.ID(),
		Status: s.Status().String(),
		Order: OrderView{
			ID:       ord.ID(),
			Currency: ord.Currency(),
			Items:    itemViews,
		},
		Totals: TotalsView{
			SubTotal:            totals.SubTotal,
			Tax:                 totals.Tax,
			Fee:                 totals.Fee,
			TotalBeforeDiscount: totals.TotalBeforeDiscount,
			Discount:            totals.Discount,
			TotalToPay:          totals.TotalToPay,
		},
		Account: AccountView{
			PointsBalance:  account.PointsBalance(),
			PointsRedeemed: account.PointsRedeemed(),
			LifetimePoints: account.LifetimePoints(),
		},
		Redemption: RedemptionView{
			Enabled:           intent.Enabled,
			RequestedPoints:   intent.RequestedRaw,
			AppliedPoints:     intent.AppliedPoints,
			ValidationMessage: s.ValidationMessage(),
		},
		FailReason: s.FailReason(),
		CreatedAt:  s.CreatedAt(),
		UpdatedAt:  s.UpdatedAt(),
	}

	if res := s.Result(); res != nil {
		view.Result = &ResultView{
			OrderRef:      res.OrderRef,
			AmountCharged: res.AmountCharged,
			PointsApplied: res.PointsApplied,
		}
	}
	return view
}
