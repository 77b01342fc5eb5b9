package request

import (
	"checkout-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

type StartCheckoutRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
}

type ToggleRedemptionRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetPointsRequest carries the raw text of the points field. Validation of
// the content is the ledger's job, not the transport's, so no binding rule
// beyond presence of the key.
type SetPointsRequest struct {
	Points string `json:"points"`
}

type CardRequest struct {
	Number   string `json:"number" binding:"required"`
	ExpMonth int    `json:"expMonth" binding:"required,min=1,max=12"`
	ExpYear  int    `json:"expYear" binding:"required,min=2000"`
	CVC      string `json:"cvc" binding:"required"`
	Name     string `json:"name"`
}

type SubmitCheckoutRequest struct {
	Card CardRequest `json:"card" binding:"required"`
}

func (r SubmitCheckoutRequest) ToCardInput() commands.CardInput {
	return commands.CardInput{
		Number:   r.Card.Number,
		ExpMonth: r.Card.ExpMonth,
		ExpYear:  r.Card.ExpYear,
		CVC:      r.Card.CVC,
		Name:     r.Card.Name,
	}
}
