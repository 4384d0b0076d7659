package zaif

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/curio184/zaifer-mcp/internal/model"
)

// TradeAPI serves the authenticated trading endpoints.
type TradeAPI struct {
	client  *Client
	baseURL string
}

// TradeHistoryOptions narrow a trade-history query. Zero values mean "not
// set" and are omitted from the request.
type TradeHistoryOptions struct {
	CurrencyPair string
	Count        int
	Since        int64 // Unix seconds, inclusive lower bound
	End          int64 // Unix seconds, inclusive upper bound
}

// PlaceOrder submits a limit order. side is "bid" (buy) or "ask" (sell).
//
// The trade endpoint takes price and amount as plain numbers, so both are
// converted to their shortest float representation at this boundary. That
// conversion can lose precision relative to the decimal values everywhere
// else; it mirrors upstream behavior and is deliberately not papered over.
func (t *TradeAPI) PlaceOrder(ctx context.Context, currencyPair, side string, price, quantity decimal.Decimal) (model.OrderResponse, error) {
	params := url.Values{}
	params.Set("method", "trade")
	params.Set("currency_pair", currencyPair)
	params.Set("action", side)
	params.Set("price", strconv.FormatFloat(price.InexactFloat64(), 'f', -1, 64))
	params.Set("amount", strconv.FormatFloat(quantity.InexactFloat64(), 'f', -1, 64))

	body, err := t.client.Post(ctx, t.baseURL, params)
	if err != nil {
		return model.OrderResponse{}, err
	}
	resp, err := model.ParseOrderResponse(body)
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return resp, nil
}

// CancelOrder cancels a resting order. currencyPair may be empty, in which
// case the exchange resolves the order by id alone; isToken must be set when
// cancelling an order on a token pair.
func (t *TradeAPI) CancelOrder(ctx context.Context, orderID int64, currencyPair string, isToken bool) (model.CancelOrderResponse, error) {
	params := url.Values{}
	params.Set("method", "cancel_order")
	params.Set("order_id", strconv.FormatInt(orderID, 10))
	if currencyPair != "" {
		params.Set("currency_pair", currencyPair)
	}
	if isToken {
		params.Set("is_token", "true")
	}

	body, err := t.client.Post(ctx, t.baseURL, params)
	if err != nil {
		return model.CancelOrderResponse{}, err
	}
	resp, err := model.ParseCancelOrderResponse(body)
	if err != nil {
		return model.CancelOrderResponse{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return resp, nil
}

// GetActiveOrders fetches the resting orders, optionally limited to one
// currency pair. Entries the normalizer had to drop are logged and excluded.
func (t *TradeAPI) GetActiveOrders(ctx context.Context, currencyPair string) (model.OpenOrderList, error) {
	params := url.Values{}
	params.Set("method", "active_orders")
	if currencyPair != "" {
		params.Set("currency_pair", currencyPair)
	}

	body, err := t.client.Post(ctx, t.baseURL, params)
	if err != nil {
		return model.OpenOrderList{}, err
	}
	list, skipped, err := model.ParseOpenOrders(body)
	if err != nil {
		return model.OpenOrderList{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	logSkips("active_orders", skipped)
	return list, nil
}

// GetTradeHistory fetches the account's filled trades, newest first. Entries
// the normalizer had to drop are logged and excluded.
func (t *TradeAPI) GetTradeHistory(ctx context.Context, opts TradeHistoryOptions) (model.TradeExecutionList, error) {
	params := url.Values{}
	params.Set("method", "trade_history")
	if opts.CurrencyPair != "" {
		params.Set("currency_pair", opts.CurrencyPair)
	}
	if opts.Count > 0 {
		params.Set("count", strconv.Itoa(opts.Count))
	}
	if opts.Since > 0 {
		params.Set("since", strconv.FormatInt(opts.Since, 10))
	}
	if opts.End > 0 {
		params.Set("end", strconv.FormatInt(opts.End, 10))
	}

	body, err := t.client.Post(ctx, t.baseURL, params)
	if err != nil {
		return model.TradeExecutionList{}, err
	}
	list, skipped, err := model.ParseTradeExecutions(body)
	if err != nil {
		return model.TradeExecutionList{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	logSkips("trade_history", skipped)
	return list, nil
}
