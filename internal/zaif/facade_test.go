package zaif

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newTestAPI(t *testing.T, handler http.HandlerFunc, creds *Credentials) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(creds, Options{
		MarketURL:  srv.URL,
		TradeURL:   srv.URL,
		ChartURL:   srv.URL,
		HTTPClient: srv.Client(),
	})
}

// Test_Market_GetTicker_DecimalExact is the end-to-end ticker scenario: all
// fields must match the wire text exactly, with no floating-point drift.
func Test_Market_GetTicker_DecimalExact(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/ticker/btc_jpy", r.URL.Path)
		_, _ = w.Write([]byte(`{"last":"100","high":"110","low":"90","ask":"101","bid":"99","volume":"5"}`))
	}, nil)

	ticker, err := api.Market.GetTicker(context.Background(), "btc_jpy")
	require.NoError(t, err)
	assert.Equal(t, "100", ticker.LastPrice.String())
	assert.Equal(t, "110", ticker.HighPrice.String())
	assert.Equal(t, "90", ticker.LowPrice.String())
	assert.Equal(t, "101", ticker.AskPrice.String())
	assert.Equal(t, "99", ticker.BidPrice.String())
	assert.Equal(t, "5", ticker.Volume.String())
}

func Test_Market_GetTicker_DecodeError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, nil)

	_, err := api.Market.GetTicker(context.Background(), "btc_jpy")
	assert.ErrorIs(t, err, ErrDecode)
}

func Test_Market_GetDepth_KeepsUpstreamOrder(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/depth/eth_jpy", r.URL.Path)
		_, _ = w.Write([]byte(`{"asks":[[101,0.5],[102,1.0]],"bids":[[99,2.0],[98,0.25]]}`))
	}, nil)

	book, err := api.Market.GetDepth(context.Background(), "eth_jpy")
	require.NoError(t, err)
	require.Len(t, book.Asks, 2)
	require.Len(t, book.Bids, 2)
	assert.Equal(t, "101", book.Asks[0].Price.String())
	assert.Equal(t, "0.5", book.Asks[0].Quantity.String())
	assert.Equal(t, "99", book.Bids[0].Price.String())
}

func Test_Account_GetDepositHistory_SkipsBadEntries(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "deposit_history", r.PostForm.Get("method"))
		assert.Equal(t, "btc", r.PostForm.Get("currency"))
		assert.Equal(t, "10", r.PostForm.Get("count"))
		_, _ = w.Write([]byte(`{"success": 1, "return": {
			"3816": {"timestamp": "1435745065", "address": "addr-a", "amount": 0.001, "txid": "tx-a"},
			"3817": {"timestamp": "1435745066", "address": "addr-b", "amount": "not-a-number", "txid": "tx-b"}
		}}`))
	}, testCreds())

	records, err := api.Account.GetDepositHistory(context.Background(), "btc", HistoryOptions{Count: 10})
	require.NoError(t, err)
	require.Len(t, records.Items, 1, "the malformed entry is dropped, the rest survive")
	assert.Equal(t, int64(3816), records.Items[0].ID)
	assert.Equal(t, "0.001", records.Items[0].Amount.String())
}

func Test_Account_GetProfile(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "get_personal_info", r.PostForm.Get("method"))
		_, _ = w.Write([]byte(`{"success": 1, "return": {
			"ranking_id": "abc123", "icon_path": null, "area_id": 13, "ranking_nickname": "trader"
		}}`))
	}, testCreds())

	profile, err := api.Account.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "trader", profile.Nickname)
	assert.Empty(t, profile.IconPath)
	assert.Equal(t, 13, profile.AreaID)
}

func Test_Account_GetIdentification(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "get_id_info", r.PostForm.Get("method"))
		_, _ = w.Write([]byte(`{"success": 1, "return": {
			"user": {"id": 123456, "email": "a@example.com", "name": "n", "kana": "k", "certified": 1}
		}}`))
	}, testCreds())

	ident, err := api.Account.GetIdentification(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123456", ident.ID)
	assert.True(t, ident.Certified)
}

func Test_Trade_PlaceOrder_WireParameters(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "trade", r.PostForm.Get("method"))
		assert.Equal(t, "btc_jpy", r.PostForm.Get("currency_pair"))
		assert.Equal(t, "bid", r.PostForm.Get("action"))
		assert.Equal(t, "5000000", r.PostForm.Get("price"))
		assert.Equal(t, "0.001", r.PostForm.Get("amount"))
		_, _ = w.Write([]byte(`{"success": 1, "return": {
			"received": "0.001", "remains": "0", "order_id": 0, "funds": {"jpy": "5000", "btc": "0.101"}
		}}`))
	}, testCreds())

	resp, err := api.Trade.PlaceOrder(context.Background(), "btc_jpy", "bid",
		mustDecimal(t, "5000000"), mustDecimal(t, "0.001"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.OrderID, "order id zero means fully filled")
	assert.Equal(t, "0.001", resp.FilledAmount.String())
	assert.Equal(t, "0", resp.UnfilledAmount.String())
	assert.Equal(t, "5000", resp.Balances["jpy"].String())
}

func Test_Trade_GetActiveOrders_OptionalPair(t *testing.T) {
	var sentPair []string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		sentPair = append(sentPair, r.PostForm.Get("currency_pair"))
		_, _ = w.Write([]byte(`{"success": 1, "return": {
			"184": {"currency_pair": "btc_jpy", "action": "ask", "price": 5000000, "amount": 0.5, "timestamp": "1402021125"}
		}}`))
	}, testCreds())

	orders, err := api.Trade.GetActiveOrders(context.Background(), "btc_jpy")
	require.NoError(t, err)
	require.Contains(t, orders.OpenOrders, int64(184))
	assert.Equal(t, "ask", orders.OpenOrders[184].Side)
	assert.Equal(t, time.Unix(1402021125, 0), orders.OpenOrders[184].OrderTime)

	_, err = api.Trade.GetActiveOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"btc_jpy", ""}, sentPair, "empty pair must be omitted from the request")
}

func Test_Chart_GetOHLC_DoubleEncodedBody(t *testing.T) {
	payload := `{"ohlc_data": [{"time": 1700000000000, "open": "100", "high": "110", "low": "90", "close": "105", "volume": "3"}], "data_count": 1}`
	wrapped, err := json.Marshal(payload) // the chart api returns a JSON-encoded string
	require.NoError(t, err)

	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "btc_jpy", q.Get("symbol"))
		assert.Equal(t, "60", q.Get("resolution"))
		assert.Equal(t, "1699990000", q.Get("from"))
		assert.Equal(t, "1700090000", q.Get("to"))
		_, _ = w.Write(wrapped)
	}, nil)

	chart, err := api.Chart.GetOHLC(context.Background(), "btc_jpy", "60",
		time.Unix(1699990000, 0), time.Unix(1700090000, 0))
	require.NoError(t, err)
	assert.Equal(t, "btc_jpy", chart.CurrencyPair)
	assert.Equal(t, "1 hour", chart.Timeframe)
	assert.Equal(t, 1, chart.DataCount)
	require.Len(t, chart.Candlesticks, 1)
	assert.Equal(t, time.UnixMilli(1700000000000), chart.Candlesticks[0].Timestamp)
	assert.Equal(t, "105", chart.Candlesticks[0].ClosePrice.String())
}

func Test_Chart_GetOHLC_PlainBody(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ohlc_data": [], "data_count": 0}`))
	}, nil)

	chart, err := api.Chart.GetOHLC(context.Background(), "xym_jpy", "D",
		time.Unix(1699990000, 0), time.Unix(1700090000, 0))
	require.NoError(t, err)
	assert.Equal(t, "1 day", chart.Timeframe)
	assert.Empty(t, chart.Candlesticks)
}
