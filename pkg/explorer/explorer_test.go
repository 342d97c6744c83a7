package explorer

import (
	"builderboard/conf"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, body string) *Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "txlist", q.Get("action"))
		assert.Equal(t, "8453", q.Get("chainid"))
		assert.Equal(t, "key", q.Get("apikey"))
		assert.Equal(t, "5", q.Get("offset"))
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return NewClient(conf.UpstreamConfig{BaseURL: server.URL, ApiKey: "key"}, 8453)
}

func TestClient_Transactions(t *testing.T) {
	c := newTestClient(t, `{"status":"1","message":"OK","result":[
		{"hash":"0x1","timeStamp":"1700000000","from":"0xa","to":"0xb","value":"1"},
		{"hash":"0x2","timeStamp":"1700000100","from":"0xa","to":"","contractAddress":"0xc0de"}]}`)

	txs, err := c.Transactions(context.Background(), "0xa", 5)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), txs[0].Time())

	deployed := ContractDeployments(txs)
	require.Len(t, deployed, 1)
	assert.Equal(t, "0xc0de", deployed[0].ContractAddress)
}

func TestClient_NoTransactions(t *testing.T) {
	c := newTestClient(t, `{"status":"0","message":"No transactions found","result":[]}`)
	txs, err := c.Transactions(context.Background(), "0xa", 5)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestClient_ErrorResult(t *testing.T) {
	c := newTestClient(t, `{"status":"0","message":"NOTOK","result":"Invalid API Key"}`)
	_, err := c.Transactions(context.Background(), "0xa", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
}
