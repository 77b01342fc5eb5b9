package ordersource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"checkout-ledger/internal/domain/loyalty"
	"checkout-ledger/internal/domain/order"
	"checkout-ledger/internal/infra"
	"checkout-ledger/internal/pkg/config"
	"checkout-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

const checkoutDetailsPathFmt = "/api/orders/%s/checkout-details"

// Client fetches the order and loyalty snapshot that seeds a checkout
// session. One round trip per session start.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ commands.OrderSource = (*Client)(nil)

func NewClient(cfg config.OrderSourceConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type detailsResponse struct {
	Order struct {
		ID       uuid.UUID `json:"id"`
		Currency string    `json:"currency"`
		Items    []struct {
			SKU        string `json:"sku"`
			Name       string `json:"name"`
			UnitAmount int64  `json:"unit_amount"`
			Quantity   int64  `json:"quantity"`
		} `json:"items"`
	} `json:"order"`
	LoyaltyAccount struct {
		PointsBalance  int64 `json:"points_balance"`
		PointsRedeemed int64 `json:"points_redeemed"`
		LifetimePoints int64 `json:"lifetime_points"`
	} `json:"loyalty_account"`
}

func (c *Client) FetchOrderDetails(ctx context.Context, orderID uuid.UUID) (*commands.OrderDetails, error) {
	url := c.baseURL + fmt.Sprintf(checkoutDetailsPathFmt, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, infra.WrapCollabErr(c.logger, infra.KindSourceFailure, "build order details request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, infra.WrapCollabErr(c.logger, infra.KindSourceFailure, "fetch order details", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, infra.WrapCollabErr(c.logger, infra.KindSourceFailure,
			fmt.Sprintf("order source returned status %d", resp.StatusCode), nil)
	}

	var body detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, infra.WrapCollabErr(c.logger, infra.KindBadPayload, "decode order details", err)
	}

	return toDomain(c.logger, body)
}

func toDomain(logger *slog.Logger, body detailsResponse) (*commands.OrderDetails, error) {
	items := make([]order.LineItem, 0, len(body.Order.Items))
	for _, it := range body.Order.Items {
		li, err := order.NewLineItem(it.SKU, it.Name, it.UnitAmount, it.Quantity)
		if err != nil {
			return nil, infra.WrapCollabErr(logger, infra.KindBadPayload, "invalid line item", err)
		}
		items = append(items, li)
	}

	ord, err := order.NewOrder(body.Order.ID, body.Order.Currency, items)
	if err != nil {
		return nil, infra.WrapCollabErr(logger, infra.KindBadPayload, "invalid order", err)
	}

	account, err := loyalty.NewAccount(
		body.LoyaltyAccount.PointsBalance,
		body.LoyaltyAccount.PointsRedeemed,
		body.LoyaltyAccount.LifetimePoints,
	)
	if err != nil {
		return nil, infra.WrapCollabErr(logger, infra.KindBadPayload, "invalid loyalty account", err)
	}

	return &commands.OrderDetails{Order: ord, Account: account}, nil
}
