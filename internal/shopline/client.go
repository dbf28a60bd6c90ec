// Package shopline is a minimal client for the Shopline Admin OpenAPI,
// covering the single create-order call the batch pipeline needs.
package shopline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ericwinler854485/shopline-bulk/internal/order"
)

// DefaultAPIVersion is the Admin OpenAPI version the client targets when the
// configuration leaves it unset.
const DefaultAPIVersion = "v20251201"

// DefaultTimeout bounds each create-order request. There is no retry; a
// timeout surfaces as a failed outcome for that row only.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a non-2xx response body is kept. Error
// schemas vary between endpoints, so the raw text is reported as-is.
const maxErrorBody = 4 << 10

const userAgent = "shopline-bulk/1.0"

// Config holds the per-deployment client settings. Credentials are supplied
// separately per task via NewClient.
type Config struct {
	APIVersion string
	Timeout    time.Duration
}

// Client performs create-order calls against one store with one token.
// Construct one per batch task; it is safe for sequential reuse.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// APIError wraps a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// CreatedOrder is the subset of the API's order resource the pipeline reads
// back: the display name and the numeric identifier.
type CreatedOrder struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// NewClient builds a client for the given store. A scheme prefix on the
// domain, if present, is stripped; requests always go over HTTPS.
func NewClient(accessToken, storeDomain string, cfg Config) *Client {
	domain := strings.TrimPrefix(storeDomain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimSuffix(domain, "/")

	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		token:      accessToken,
		baseURL:    fmt.Sprintf("https://%s/admin/openapi/%s", domain, version),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateOrder submits one order payload and returns the created order.
// Non-2xx responses come back as *APIError; transport failures are returned
// unchanged. The payload travels as the sole "order" field of the body.
func (c *Client) CreateOrder(ctx context.Context, payload order.Payload) (CreatedOrder, error) {
	body := map[string]any{"order": payload}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return CreatedOrder{}, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders.json", &buf)
	if err != nil {
		return CreatedOrder{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CreatedOrder{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return CreatedOrder{}, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	var out struct {
		Order CreatedOrder `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CreatedOrder{}, fmt.Errorf("decode order response: %w", err)
	}
	return out.Order, nil
}

// Submit performs one create-order call and reduces the result to a single
// human-readable outcome line. All errors are absorbed here: an expired
// token, a validation rejection, or a dead connection fails this row, not
// the batch.
func (c *Client) Submit(ctx context.Context, payload order.Payload) string {
	created, err := c.CreateOrder(ctx, payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("Error %d: %s", apiErr.StatusCode, apiErr.Body)
		}
		return err.Error()
	}

	ref := created.Name
	if ref == "" {
		ref = created.ID.String()
	}
	return fmt.Sprintf("Order %s created", ref)
}
