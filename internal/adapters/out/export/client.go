// Package export provides an HTTP client for the document export service.
// The service owns rendering; this client only submits order snapshots.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// itemDTO is the wire representation of one order line in an export request.
type itemDTO struct {
	ProductID      string `json:"product_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// exportRequestDTO is the order snapshot submitted for export.
type exportRequestDTO struct {
	OrderID       string    `json:"order_id"`
	StoreID       string    `json:"store_id"`
	WarehouseID   string    `json:"warehouse_id"`
	Status        string    `json:"status"`
	Items         []itemDTO `json:"items"`
	SubtotalCents int64     `json:"subtotal_cents"`
	TaxCents      int64     `json:"tax_cents"`
	TotalCents    int64     `json:"total_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

// Client implements ports.OrderExporter against the export service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an export client.
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

// Export submits one order snapshot to the export service.
func (c *Client) Export(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(toRequestDTO(o))
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/v1/exports", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("export service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("export service returned status %d", resp.StatusCode)
	}

	return nil
}

func toRequestDTO(o *order.Order) exportRequestDTO {
	items := make([]itemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemDTO{
			ProductID:      item.ProductID().String(),
			SKU:            item.SKU(),
			Name:           item.Name(),
			UnitPriceCents: item.UnitPrice().Cents(),
			Quantity:       item.Quantity(),
		})
	}

	return exportRequestDTO{
		OrderID:       o.ID().String(),
		StoreID:       o.StoreID().String(),
		WarehouseID:   o.WarehouseID().String(),
		Status:        o.Status().String(),
		Items:         items,
		SubtotalCents: o.Subtotal().Cents(),
		TaxCents:      o.Tax().Cents(),
		TotalCents:    o.Total().Cents(),
		CreatedAt:     o.CreatedAt(),
	}
}
