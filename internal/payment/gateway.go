package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GatewayOrder is the remote order reference the gateway issues before the
// shopper is redirected to it. Amount is in minor currency units.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
}

// HTTPGatewayClient talks to the payment provider's order API. The
// caller supplies a Client with an explicit timeout; a timed-out call
// surfaces like any other transport error.
type HTTPGatewayClient struct {
	Client    *http.Client
	BaseURL   string
	KeyID     string
	KeySecret string
}

type gatewayOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type gatewayErrorResponse struct {
	Error struct {
		Description string `json:"description"`
	} `json:"error"`
}

func (c *HTTPGatewayClient) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	body, err := json.Marshal(gatewayOrderRequest{
		Amount:         amountMinor,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/orders", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ge gatewayErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&ge); err == nil && ge.Error.Description != "" {
			return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, ge.Error.Description)
		}
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var gw GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return &gw, nil
}
