package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseTicker(t *testing.T) {
	t.Run("Quoted decimals parse exactly", func(t *testing.T) {
		body := `{"last":"100","high":"110","low":"90","ask":"101","bid":"99","volume":"5"}`
		ticker, err := ParseTicker([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, "100", ticker.LastPrice.String())
		assert.Equal(t, "110", ticker.HighPrice.String())
		assert.Equal(t, "90", ticker.LowPrice.String())
		assert.Equal(t, "101", ticker.AskPrice.String())
		assert.Equal(t, "99", ticker.BidPrice.String())
		assert.Equal(t, "5", ticker.Volume.String())
	})

	t.Run("Bare numbers keep their wire text", func(t *testing.T) {
		body := `{"last":5000000.5,"high":5100000,"low":4900000,"ask":5000001,"bid":4999999,"volume":123.456789012345}`
		ticker, err := ParseTicker([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, "5000000.5", ticker.LastPrice.String())
		assert.Equal(t, "123.456789012345", ticker.Volume.String())
	})

	t.Run("Round trip", func(t *testing.T) {
		body := `{"last":"100","high":"110","low":"90","ask":"101","bid":"99","volume":"5"}`
		ticker, err := ParseTicker([]byte(body))
		require.NoError(t, err)
		wire, err := ticker.Wire()
		require.NoError(t, err)
		again, err := ParseTicker(wire)
		require.NoError(t, err)
		assert.Equal(t, ticker, again)
	})

	t.Run("Malformed body fails", func(t *testing.T) {
		_, err := ParseTicker([]byte(`{"last":`))
		assert.Error(t, err)
	})
}

func Test_ParseOrderBook(t *testing.T) {
	body := `{"asks":[[5000001,0.5],[5000002.5,"1.25"]],"bids":[[4999999,2],[4999998,0.1]]}`
	book, err := ParseOrderBook([]byte(body))
	require.NoError(t, err)

	require.Len(t, book.Asks, 2)
	require.Len(t, book.Bids, 2)
	assert.Equal(t, "5000001", book.Asks[0].Price.String())
	assert.Equal(t, "0.5", book.Asks[0].Quantity.String())
	assert.Equal(t, "5000002.5", book.Asks[1].Price.String())
	assert.Equal(t, "1.25", book.Asks[1].Quantity.String())
	assert.Equal(t, "4999999", book.Bids[0].Price.String(), "levels keep upstream order")
	assert.Equal(t, "4999998", book.Bids[1].Price.String())

	wire, err := book.Wire()
	require.NoError(t, err)
	again, err := ParseOrderBook(wire)
	require.NoError(t, err)
	assert.Equal(t, book, again)
}

func Test_ParseCurrencies(t *testing.T) {
	body := `[{"name":"btc","is_token":false},{"name":"zaif","is_token":true}]`
	currencies, err := ParseCurrencies([]byte(body))
	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, Currency{Name: "btc", IsToken: false}, currencies[0])
	assert.Equal(t, Currency{Name: "zaif", IsToken: true}, currencies[1])
}

func Test_ParseCurrencyPairs(t *testing.T) {
	body := `[{
		"currency_pair": "btc_jpy",
		"item_japanese": "ビットコイン",
		"aux_japanese": "日本円",
		"item_unit_min": "0.001",
		"item_unit_step": "0.0001",
		"aux_unit_min": "5",
		"aux_unit_step": "5",
		"aux_unit_point": 0
	}]`
	pairs, err := ParseCurrencyPairs([]byte(body))
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	p := pairs[0]
	assert.Equal(t, "btc_jpy", p.CurrencyPair)
	assert.Equal(t, "ビットコイン/日本円", p.DisplayName)
	assert.Equal(t, "0.001", p.MinQuantity.String())
	assert.Equal(t, "0.0001", p.QuantityStep.String())
	assert.Equal(t, "5", p.MinPrice.String())
	assert.Equal(t, "5", p.PriceStep.String())
	assert.Equal(t, 0, p.PricePrecision)

	wire, err := p.Wire()
	require.NoError(t, err)
	again, err := ParseCurrencyPair(wire)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}
