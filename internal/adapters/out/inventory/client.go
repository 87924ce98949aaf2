// Package inventory provides an HTTP client for the inventory service with a
// Redis read-through cache. Stock levels are advisory, so serving a slightly
// stale cached level is acceptable and keeps order intake off the inventory
// service's hot path.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "fulfillment:stock:"
	cacheTTL       = 30 * time.Second
)

// stockLevelDTO is the wire representation of one product's availability.
type stockLevelDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Client implements ports.StockLevelProvider against the inventory service.
// Responses are cached per warehouse and product in Redis; cache failures
// degrade to a direct service call rather than failing the request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
}

// NewClient creates an inventory client. The Redis client is optional; pass
// nil to disable caching.
func NewClient(baseURL string, httpClient *http.Client, cache *redis.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		cache:      cache,
	}, nil
}

// GetStockLevels returns the availability of the given products at one
// warehouse. Cached levels are used when fresh; the remainder is fetched from
// the inventory service in a single call and cached for subsequent checks.
func (c *Client) GetStockLevels(
	ctx context.Context, warehouseID kernel.UUID, productIDs []kernel.UUID,
) (map[kernel.UUID]services.StockLevel, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	levels := make(map[kernel.UUID]services.StockLevel, len(productIDs))
	missing := make([]kernel.UUID, 0, len(productIDs))

	for _, productID := range productIDs {
		if level, ok := c.readCache(ctx, warehouseID, productID); ok {
			levels[productID] = level
			continue
		}
		missing = append(missing, productID)
	}

	if len(missing) == 0 {
		return levels, nil
	}

	fetched, err := c.fetch(ctx, warehouseID, missing)
	if err != nil {
		return nil, err
	}

	for productID, level := range fetched {
		levels[productID] = level
		c.writeCache(ctx, warehouseID, productID, level)
	}

	return levels, nil
}

// fetch queries the inventory service for the given products.
func (c *Client) fetch(
	ctx context.Context, warehouseID kernel.UUID, productIDs []kernel.UUID,
) (map[kernel.UUID]services.StockLevel, error) {
	ids := make([]string, 0, len(productIDs))
	for _, productID := range productIDs {
		ids = append(ids, productID.String())
	}

	query := url.Values{}
	query.Set("warehouse_id", warehouseID.String())
	query.Set("product_ids", strings.Join(ids, ","))

	endpoint := fmt.Sprintf("%s/api/v1/stock-levels?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory service returned status %d", resp.StatusCode)
	}

	var payload struct {
		Levels []stockLevelDTO `json:"levels"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("inventory service response is malformed: %w", err)
	}

	levels := make(map[kernel.UUID]services.StockLevel, len(payload.Levels))
	for _, dto := range payload.Levels {
		productID, parseErr := kernel.UUIDFromString(dto.ProductID)
		if parseErr != nil {
			return nil, fmt.Errorf("inventory service response is malformed: %w", parseErr)
		}

		levels[productID] = services.StockLevel{Quantity: dto.Quantity}
	}

	return levels, nil
}

func (c *Client) cacheKey(warehouseID, productID kernel.UUID) string {
	return cacheKeyPrefix + warehouseID.String() + ":" + productID.String()
}

// readCache returns a cached level. Any cache error is treated as a miss.
func (c *Client) readCache(ctx context.Context, warehouseID, productID kernel.UUID) (services.StockLevel, bool) {
	if c.cache == nil {
		return services.StockLevel{}, false
	}

	// Both a cache miss and an unavailable cache fall through to the service
	raw, err := c.cache.Get(ctx, c.cacheKey(warehouseID, productID)).Result()
	if err != nil {
		return services.StockLevel{}, false
	}

	var level services.StockLevel
	if err = json.Unmarshal([]byte(raw), &level); err != nil {
		return services.StockLevel{}, false
	}

	return level, true
}

// writeCache stores a level with a short TTL. Write failures are ignored.
func (c *Client) writeCache(ctx context.Context, warehouseID, productID kernel.UUID, level services.StockLevel) {
	if c.cache == nil {
		return
	}

	raw, err := json.Marshal(level)
	if err != nil {
		return
	}

	c.cache.Set(ctx, c.cacheKey(warehouseID, productID), raw, cacheTTL)
}
