// Package identity provides an HTTP client for the identity service. It
// resolves an actor id into a workflow role, with a short Redis cache since
// role changes are rare and every mutating request resolves a role.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "fulfillment:role:"
	cacheTTL       = 5 * time.Minute
)

// Client implements ports.RoleProvider against the identity service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
}

// NewClient creates an identity service client. The Redis client is optional;
// pass nil to disable caching.
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

// GetRole returns the workflow role of the given actor.
// Unknown actors fail with errs.ObjectNotFoundError.
func (c *Client) GetRole(ctx context.Context, actorID kernel.UUID) (kernel.Role, error) {
	if err := actorID.Validate(); err != nil {
		return kernel.RoleUnknown, err
	}

	if role, ok := c.readCache(ctx, actorID); ok {
		return role, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/actors/%s", c.baseURL, actorID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.RoleUnknown, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.RoleUnknown, fmt.Errorf("identity service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return kernel.RoleUnknown, errs.NewObjectNotFoundError("actor", actorID.String())
	}
	if resp.StatusCode != http.StatusOK {
		return kernel.RoleUnknown, fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	var payload struct {
		Role string `json:"role"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return kernel.RoleUnknown, fmt.Errorf("identity service response is malformed: %w", err)
	}

	role, err := kernel.RoleFromString(payload.Role)
	if err != nil {
		return kernel.RoleUnknown, err
	}

	c.writeCache(ctx, actorID, role)
	return role, nil
}

func (c *Client) cacheKey(actorID kernel.UUID) string {
	return cacheKeyPrefix + actorID.String()
}

// readCache returns a cached role. Any cache error is treated as a miss.
func (c *Client) readCache(ctx context.Context, actorID kernel.UUID) (kernel.Role, bool) {
	if c.cache == nil {
		return kernel.RoleUnknown, false
	}

	// Both a cache miss and an unavailable cache fall through to the service
	raw, err := c.cache.Get(ctx, c.cacheKey(actorID)).Result()
	if err != nil {
		return kernel.RoleUnknown, false
	}

	role, err := kernel.RoleFromString(raw)
	if err != nil {
		return kernel.RoleUnknown, false
	}

	return role, true
}

// writeCache stores a role with a short TTL. Write failures are ignored.
func (c *Client) writeCache(ctx context.Context, actorID kernel.UUID, role kernel.Role) {
	if c.cache == nil {
		return
	}

	c.cache.Set(ctx, c.cacheKey(actorID), role.String(), cacheTTL)
}
