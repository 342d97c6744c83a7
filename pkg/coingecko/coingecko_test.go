package coingecko

import (
	"builderboard/conf"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, path string, body string, status int) *Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Equal(t, "demo", r.Header.Get("x-cg-demo-api-key"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return NewClient(conf.PriceConfig{BaseURL: server.URL, ApiKey: "demo"})
}

func TestClient_SimplePrice(t *testing.T) {
	c := setupTestServer(t, "/simple/price", `{"celo":{"usd":0.52}}`, http.StatusOK)
	p, err := c.SimplePrice(context.Background(), "CELO")
	require.NoError(t, err)
	assert.Equal(t, 0.52, p)
}

func TestClient_TokenPrice(t *testing.T) {
	addr := "0xef4461891dfb3ac8572ccf7c794664a8dd927945"
	c := setupTestServer(t, "/simple/token_price/optimistic-ethereum", `{"`+addr+`":{"usd":0.11}}`, http.StatusOK)
	p, err := c.TokenPrice(context.Background(), "optimistic-ethereum", "0xEF4461891DFB3AC8572CCF7C794664A8DD927945")
	require.NoError(t, err)
	assert.Equal(t, 0.11, p)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing price", `{}`, http.StatusOK},
		{"zero price", `{"celo":{"usd":0}}`, http.StatusOK},
		{"rate limited", `{"status":{"error_code":429}}`, http.StatusTooManyRequests},
		{"bad json", `<html>`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestServer(t, "/simple/price", tt.body, tt.status)
			_, err := c.SimplePrice(context.Background(), "celo")
			assert.Error(t, err)
		})
	}
}
