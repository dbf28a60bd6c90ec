package shopline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ericwinler854485/shopline-bulk/internal/order"
)

func TestNewClient_BaseURL(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		cfg    Config
		want   string
	}{
		{
			name:   "bare domain",
			domain: "example.shoplineapp.com",
			want:   "https://example.shoplineapp.com/admin/openapi/v20251201",
		},
		{
			name:   "https prefix stripped",
			domain: "https://example.shoplineapp.com",
			want:   "https://example.shoplineapp.com/admin/openapi/v20251201",
		},
		{
			name:   "http prefix stripped",
			domain: "http://example.shoplineapp.com",
			want:   "https://example.shoplineapp.com/admin/openapi/v20251201",
		},
		{
			name:   "trailing slash stripped",
			domain: "example.shoplineapp.com/",
			want:   "https://example.shoplineapp.com/admin/openapi/v20251201",
		},
		{
			name:   "custom api version",
			domain: "example.shoplineapp.com",
			cfg:    Config{APIVersion: "v20240601"},
			want:   "https://example.shoplineapp.com/admin/openapi/v20240601",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient("token", tt.domain, tt.cfg)
			if c.baseURL != tt.want {
				t.Errorf("baseURL = %q, want %q", c.baseURL, tt.want)
			}
		})
	}
}

// testClient points a client at a local test server.
func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c := NewClient("test-token", "example.shoplineapp.com", Config{})
	c.baseURL = srv.URL
	return c
}

func TestCreateOrder_Success(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if r.URL.Path != "/orders.json" {
			t.Errorf("path = %q, want /orders.json", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order":{"id":1042,"name":"#1001"}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	created, err := c.CreateOrder(context.Background(), order.Payload{FinancialStatus: "unpaid"})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	if created.Name != "#1001" {
		t.Errorf("name = %q, want %q", created.Name, "#1001")
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("authorization = %q, want bearer token", gotAuth)
	}
	if !strings.HasPrefix(gotContentType, "application/json") {
		t.Errorf("content type = %q, want application/json", gotContentType)
	}
	if _, ok := gotBody["order"]; !ok {
		t.Error("request body should wrap the payload in an order field")
	}
}

func TestCreateOrder_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":"line_items can't be blank"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.CreateOrder(context.Background(), order.Payload{})
	if err == nil {
		t.Fatal("CreateOrder() expected error for 422 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 422 {
		t.Errorf("status = %d, want 422", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "line_items") {
		t.Errorf("body %q should carry the raw response", apiErr.Body)
	}
}

func TestSubmit_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "success with display name",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"order":{"id":1042,"name":"#1001"}}`))
			},
			want: "Order #1001 created",
		},
		{
			name: "success falls back to numeric id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"order":{"id":1042}}`))
			},
			want: "Order 1042 created",
		},
		{
			name: "api error carries status and body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"errors":"invalid token"}`))
			},
			want: `Error 401: {"errors":"invalid token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := testClient(t, srv)
			got := c.Submit(context.Background(), order.Payload{})
			if got != tt.want {
				t.Errorf("Submit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubmit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connections now refused

	c := testClient(t, srv)
	got := c.Submit(context.Background(), order.Payload{})
	if got == "" {
		t.Fatal("Submit() should describe the transport failure")
	}
	if strings.HasPrefix(got, "Order ") {
		t.Errorf("Submit() = %q, should not report success", got)
	}
}
