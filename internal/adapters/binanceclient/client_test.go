package binanceclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seriesKernel/internal/ports"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

var _ ports.KlineSource = (*Client)(nil)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL, Logger: &mockLogger{}})
	require.NoError(t, err)
	return client
}

const klinesBody = `[
	[1740787200000,"2200.10","2210.00","2195.50","2205.25","1500.123",1740790799999,"0",10,"0","0","0"],
	[1740790800000,"2205.25","2220.00","2201.00","2218.75","1720.5",1740794399999,"0",12,"0","0","0"]
]`

func TestClient_GetKlines(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fapi/v1/klines", r.URL.Path)
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, klinesBody)
	})

	klines, err := client.GetKlines(context.Background(), "ETHUSDT", "1h", 2)
	require.NoError(t, err)
	require.Len(t, klines, 2)

	assert.Contains(t, gotQuery, "symbol=ETHUSDT")
	assert.Contains(t, gotQuery, "interval=1h")
	assert.Equal(t, 2205.25, klines[0].Close)
	assert.Equal(t, 1720.5, klines[1].Volume)
	assert.Equal(t, "1h", klines[1].Interval)
	assert.True(t, time.UnixMilli(1740790800000).Equal(klines[1].OpenTime))
	assert.True(t, klines[0].IsFinal)
}

func TestClient_GetKlines_InvalidLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := client.GetKlines(context.Background(), "ETHUSDT", "1h", 0)
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)
	_, err = client.GetKlines(context.Background(), "ETHUSDT", "1h", maxKlinesPerRequest+1)
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)
}

func TestClient_GetKlinesRange(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, klinesBody)
	})

	start := time.UnixMilli(1740787200000)
	klines, err := client.GetKlinesRange(context.Background(), "ETHUSDT", "1h", start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, klines, 2)
	assert.Equal(t, 1, calls, "a short page ends paging")

	_, err = client.GetKlinesRange(context.Background(), "ETHUSDT", "1h", start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)
}

func TestClient_APIErrorMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":-1121,"msg":"Invalid symbol."}`)
	})

	_, err := client.GetKlines(context.Background(), "NOPE", "1h", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrInvalidSymbol)
}

func TestClient_HandleError(t *testing.T) {
	client, err := New(Config{Logger: &mockLogger{}})
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "rate limited", err: &common.APIError{Code: -1003, Message: "Too many requests"}, want: ports.ErrRateLimited},
		{name: "bad signature", err: &common.APIError{Code: -1022}, want: ports.ErrAuthenticationFailed},
		{name: "bad interval", err: &common.APIError{Code: -1120}, want: ports.ErrInvalidSymbol},
		{name: "bad parameter", err: &common.APIError{Code: -1102}, want: ports.ErrInvalidRequest},
		{name: "unmapped code", err: &common.APIError{Code: -9999}, want: ports.ErrUnknown},
		{name: "deadline", err: context.DeadlineExceeded, want: ports.ErrTimeout},
		{name: "canceled", err: fmt.Errorf("wrapped: %w", context.Canceled), want: ports.ErrContextCanceled},
		{name: "refused", err: fmt.Errorf("dial tcp: connection refused"), want: ports.ErrConnectionFailed},
		{name: "other", err: fmt.Errorf("boom"), want: ports.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.handleError(ctx, tt.err, "Op")
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "original error stays in the chain")
		})
	}
	assert.NoError(t, client.handleError(ctx, nil, "Op"))
}

func TestTranslateBinanceKline(t *testing.T) {
	_, err := translateBinanceKline(nil, "ETHUSDT", "1h")
	assert.Error(t, err)

	_, err = translateBinanceKline(&futures.Kline{Open: "1", High: "x", Low: "1", Close: "1", Volume: "1"}, "ETHUSDT", "1h")
	assert.ErrorContains(t, err, "high")

	k, err := translateBinanceKline(&futures.Kline{
		OpenTime: 1000, CloseTime: 1999,
		Open: "0.10000000", High: "0.3", Low: "0.1", Close: "0.2", Volume: "42",
	}, "ETHUSDT", "1s")
	require.NoError(t, err)
	assert.Equal(t, 0.1, k.Open)
	assert.Equal(t, 0.2, k.Close)
	assert.Equal(t, "ETHUSDT", k.Symbol)
}
