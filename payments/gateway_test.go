package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpay-backend/utils"
)

func TestMockGatewayAlwaysAccepts(t *testing.T) {
	g := &MockGateway{}

	resp, err := g.InitiateSTKPush(context.Background(), STKPushRequest{Amount: 232})
	require.NoError(t, err)
	assert.Equal(t, "0", resp.ResponseCode)
	assert.Equal(t, acceptedMessage, resp.CustomerMessage)
	assert.NotEmpty(t, resp.MerchantRequestID)
	assert.True(t, strings.HasPrefix(resp.CheckoutRequestID, "ws_CO_"))
}

func TestSimulatedGatewayFullSuccessRate(t *testing.T) {
	g := NewSimulatedGateway(0, 1.0)

	for i := 0; i < 10; i++ {
		resp, err := g.InitiateSTKPush(context.Background(), STKPushRequest{Amount: 100})
		require.NoError(t, err)
		assert.Equal(t, "0", resp.ResponseCode)
	}
}

func TestSimulatedGatewayZeroSuccessRate(t *testing.T) {
	g := NewSimulatedGateway(0, 0)

	_, err := g.InitiateSTKPush(context.Background(), STKPushRequest{Amount: 100})
	var rcErr *utils.RemoteCallFailure
	require.ErrorAs(t, err, &rcErr)
}

func TestSimulatedGatewayHonorsContext(t *testing.T) {
	g := NewSimulatedGateway(time.Minute, 1.0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.InitiateSTKPush(ctx, STKPushRequest{Amount: 100})
	var rcErr *utils.RemoteCallFailure
	require.ErrorAs(t, err, &rcErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPGatewayParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req STKPushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 232.0, req.Amount)

		json.NewEncoder(w).Encode(STKPushResponse{
			MerchantRequestID: "m-http",
			CheckoutRequestID: "ws_CO_http",
			ResponseCode:      "0",
		})
	}))
	defer srv.Close()

	g := &HTTPGateway{URL: srv.URL, Timeout: 5 * time.Second}
	resp, err := g.InitiateSTKPush(context.Background(), STKPushRequest{InvoiceID: "QP-2045", Amount: 232})
	require.NoError(t, err)
	assert.Equal(t, "m-http", resp.MerchantRequestID)
	assert.Equal(t, "0", resp.ResponseCode)
}

func TestHTTPGatewayNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := &HTTPGateway{URL: srv.URL}
	_, err := g.InitiateSTKPush(context.Background(), STKPushRequest{Amount: 1})
	var rcErr *utils.RemoteCallFailure
	require.ErrorAs(t, err, &rcErr)
	assert.Equal(t, http.StatusBadGateway, rcErr.Status)
}

func TestFromEnvDefaultsToMock(t *testing.T) {
	t.Setenv("PAYMENTS_MODE", "")
	_, ok := FromEnv().(*MockGateway)
	assert.True(t, ok)

	t.Setenv("PAYMENTS_MODE", "simulated")
	_, ok = FromEnv().(*SimulatedGateway)
	assert.True(t, ok)
}
