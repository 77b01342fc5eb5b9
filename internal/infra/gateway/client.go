package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"checkout-ledger/internal/infra"
	"checkout-ledger/internal/pkg/config"
	"checkout-ledger/internal/usecase/commands"
)

const (
	paymentMethodsPath = "/v1/payment_methods"
	validateIntentPath = "/v1/validate_intent"
)

// Client adapts the external payment processor. It never sees ledger state
// beyond the locked amount and the loyalty audit context.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

var _ commands.PaymentGateway = (*Client)(nil)

func NewClient(cfg config.GatewayConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type paymentMethodRequest struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVC      string `json:"cvc"`
	Name     string `json:"name,omitempty"`
}

type paymentMethodResponse struct {
	PaymentMethodID string `json:"payment_method_id"`
	Error           string `json:"error,omitempty"`
}

func (c *Client) CreatePaymentMethod(ctx context.Context, card commands.CardInput) (string, error) {
	reqBody := paymentMethodRequest{
		Number:   card.Number,
		ExpMonth: card.ExpMonth,
		ExpYear:  card.ExpYear,
		CVC:      card.CVC,
		Name:     card.Name,
	}

	var respBody paymentMethodResponse
	if err := c.post(ctx, paymentMethodsPath, reqBody, &respBody); err != nil {
		return "", err
	}
	if respBody.PaymentMethodID == "" {
		msg := respBody.Error
		if msg == "" {
			msg = "gateway returned no payment method"
		}
		return "", infra.WrapCollabErr(c.logger, infra.KindGatewayFailure, msg, nil)
	}
	return respBody.PaymentMethodID, nil
}

type intentRequest struct {
	PaymentMethodID string               `json:"payment_method_id"`
	OrderID         string               `json:"order_id"`
	Amount          int64                `json:"amount"`
	Currency        string               `json:"currency"`
	Loyalty         intentLoyaltyContext `json:"loyalty_context"`
}

type intentLoyaltyContext struct {
	PointsApplied int64 `json:"points_applied"`
	Discount      int64 `json:"discount"`
	BalanceBefore int64 `json:"balance_before"`
	BalanceAfter  int64 `json:"balance_after"`
}

type intentResponse struct {
	Valid        bool   `json:"valid"`
	ClientSecret string `json:"client_secret,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

func (c *Client) ValidateAndIntent(ctx context.Context, payload commands.IntentPayload) (*commands.IntentResult, error) {
	reqBody := intentRequest{
		PaymentMethodID: payload.PaymentMethodID,
		OrderID:         payload.OrderID.String(),
		Amount:          payload.Amount,
		Currency:        payload.Currency,
		Loyalty: intentLoyaltyContext{
			PointsApplied: payload.Loyalty.PointsApplied,
			Discount:      payload.Loyalty.Discount,
			BalanceBefore: payload.Loyalty.BalanceBefore,
			BalanceAfter:  payload.Loyalty.BalanceAfter,
		},
	}

	var respBody intentResponse
	if err := c.post(ctx, validateIntentPath, reqBody, &respBody); err != nil {
		return nil, err
	}
	return &commands.IntentResult{
		Valid:        respBody.Valid,
		ClientSecret: respBody.ClientSecret,
		Reason:       respBody.Reason,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return infra.WrapCollabErr(c.logger, infra.KindBadPayload, "encode gateway request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return infra.WrapCollabErr(c.logger, infra.KindGatewayFailure, "build gateway request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return infra.WrapCollabErr(c.logger, infra.KindGatewayFailure, "call payment gateway", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		return infra.WrapCollabErr(c.logger, infra.KindGatewayFailure,
			fmt.Sprintf("gateway returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapCollabErr(c.logger, infra.KindBadPayload, "decode gateway response", err)
	}
	return nil
}
