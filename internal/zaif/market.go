package zaif

import (
	"context"
	"fmt"

	"github.com/curio184/zaifer-mcp/internal/model"
)

// MarketAPI serves the public, unauthenticated market-data endpoints.
type MarketAPI struct {
	client  *Client
	baseURL string
}

// GetTicker fetches the ticker for one currency pair.
func (m *MarketAPI) GetTicker(ctx context.Context, currencyPair string) (model.Ticker, error) {
	body, err := m.client.Get(ctx, fmt.Sprintf("%s/1/ticker/%s", m.baseURL, currencyPair), nil)
	if err != nil {
		return model.Ticker{}, err
	}
	t, err := model.ParseTicker(body)
	if err != nil {
		return model.Ticker{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return t, nil
}

// GetLastPrice fetches the current closing price for one currency pair.
func (m *MarketAPI) GetLastPrice(ctx context.Context, currencyPair string) (model.LastPrice, error) {
	body, err := m.client.Get(ctx, fmt.Sprintf("%s/1/last_price/%s", m.baseURL, currencyPair), nil)
	if err != nil {
		return model.LastPrice{}, err
	}
	lp, err := model.ParseLastPrice(body)
	if err != nil {
		return model.LastPrice{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return lp, nil
}

// GetDepth fetches the order book for one currency pair. Levels keep the
// upstream ordering.
func (m *MarketAPI) GetDepth(ctx context.Context, currencyPair string) (model.OrderBook, error) {
	body, err := m.client.Get(ctx, fmt.Sprintf("%s/1/depth/%s", m.baseURL, currencyPair), nil)
	if err != nil {
		return model.OrderBook{}, err
	}
	book, err := model.ParseOrderBook(body)
	if err != nil {
		return model.OrderBook{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return book, nil
}

// GetCurrencies fetches currency metadata. Pass "all" for every currency.
func (m *MarketAPI) GetCurrencies(ctx context.Context, currency string) ([]model.Currency, error) {
	if currency == "" {
		currency = "all"
	}
	body, err := m.client.Get(ctx, fmt.Sprintf("%s/1/currencies/%s", m.baseURL, currency), nil)
	if err != nil {
		return nil, err
	}
	currencies, err := model.ParseCurrencies(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return currencies, nil
}

// GetCurrencyPairs fetches trading-pair constraints. Pass "all" for every
// pair.
func (m *MarketAPI) GetCurrencyPairs(ctx context.Context, currencyPair string) ([]model.CurrencyPair, error) {
	if currencyPair == "" {
		currencyPair = "all"
	}
	body, err := m.client.Get(ctx, fmt.Sprintf("%s/1/currency_pairs/%s", m.baseURL, currencyPair), nil)
	if err != nil {
		return nil, err
	}
	pairs, err := model.ParseCurrencyPairs(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return pairs, nil
}
