package commands

import (
	"context"

	"checkout-ledger/internal/domain/checkout"
	"checkout-ledger/internal/domain/loyalty"
	"checkout-ledger/internal/domain/order"

	"github.com/google/uuid"
)

// OrderDetails is the one-shot snapshot the order source returns when a
// checkout session starts: the immutable order plus the loyalty account as
// of that moment.
type OrderDetails struct {
	Order   *order.Order
	Account loyalty.Account
}

// OrderSource supplies order and loyalty data. Remote service, one in-flight
// fetch per session at most.
type OrderSource interface {
	FetchOrderDetails(ctx context.Context, orderID uuid.UUID) (*OrderDetails, error)
}

// CardInput is opaque card material forwarded to the gateway; the ledger
// never inspects it.
type CardInput struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
	Name     string
}

// LoyaltyContext travels with the payment for backend audit: what was
// redeemed and how the account snapshot moved.
type LoyaltyContext struct {
	PointsApplied int64
	Discount      int64
	BalanceBefore int64
	BalanceAfter  int64
}

type IntentPayload struct {
	PaymentMethodID string
	OrderID         uuid.UUID
	Amount          int64
	Currency        string
	Loyalty         LoyaltyContext
}

type IntentResult struct {
	Valid        bool
	ClientSecret string
	Reason       string
}

// PaymentGateway creates payment methods and confirms payment. Both calls are
// one-shot awaited round trips against the external processor.
type PaymentGateway interface {
	CreatePaymentMethod(ctx context.Context, card CardInput) (string, error)
	ValidateAndIntent(ctx context.Context, payload IntentPayload) (*IntentResult, error)
}

// SessionRepository owns the live sessions. Within runs fn with exclusive
// access to one session, serializing user actions per session so apply
// operations are strictly ordered (last write wins).
type SessionRepository interface {
	Create(session *checkout.Session) error
	Within(sessionID uuid.UUID, fn func(session *checkout.Session) error) error
	Delete(sessionID uuid.UUID)
}
