// Package billing provides an HTTP client for the payment system. It exposes
// the amount already paid against an order so views can show the remaining
// balance.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Client implements ports.BalanceProvider against the payment service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a payment service client.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// GetPaidAmount returns the total amount paid against the order.
// Orders the payment system has never seen report zero paid.
func (c *Client) GetPaidAmount(ctx context.Context, orderID kernel.UUID) (kernel.Money, error) {
	if err := orderID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	endpoint := fmt.Sprintf("%s/api/v1/orders/%s/payments", c.baseURL, orderID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.Money{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.Money{}, fmt.Errorf("payment service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return kernel.NewMoneyFromCents(0)
	}
	if resp.StatusCode != http.StatusOK {
		return kernel.Money{}, fmt.Errorf("payment service returned status %d", resp.StatusCode)
	}

	var payload struct {
		PaidCents int64 `json:"paid_cents"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return kernel.Money{}, fmt.Errorf("payment service response is malformed: %w", err)
	}

	return kernel.NewMoneyFromCents(payload.PaidCents)
}
