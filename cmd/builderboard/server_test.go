package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenOf(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"code":0}`))
	}))
	defer srv.Close()

	require.NoError(t, Ping(listenOf(srv), 1))
}

func TestPingFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := Ping(listenOf(srv), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	assert.Error(t, Ping("", 1))
}

func TestProxyRoute(t *testing.T) {
	assert.Equal(t, "leaderboard", proxyRoute("scoring"))
	assert.Equal(t, "talent", proxyRoute("talent"))
}
