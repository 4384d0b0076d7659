package model

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Ticker holds the market price statistics for one currency pair.
type Ticker struct {
	LastPrice decimal.Decimal `json:"last_price"` // most recent trade price
	HighPrice decimal.Decimal `json:"high_price"` // 24h high
	LowPrice  decimal.Decimal `json:"low_price"`  // 24h low
	AskPrice  decimal.Decimal `json:"ask_price"`  // best ask
	BidPrice  decimal.Decimal `json:"bid_price"`  // best bid
	Volume    decimal.Decimal `json:"volume"`     // 24h traded volume
}

type tickerWire struct {
	Last   decimal.Decimal `json:"last"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Ask    decimal.Decimal `json:"ask"`
	Bid    decimal.Decimal `json:"bid"`
	Volume decimal.Decimal `json:"volume"`
}

// ParseTicker normalizes a ticker response body.
func ParseTicker(data []byte) (Ticker, error) {
	var w tickerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Ticker{}, fmt.Errorf("ticker: %w", err)
	}
	return Ticker{
		LastPrice: w.Last,
		HighPrice: w.High,
		LowPrice:  w.Low,
		AskPrice:  w.Ask,
		BidPrice:  w.Bid,
		Volume:    w.Volume,
	}, nil
}

// Wire converts the ticker back to its upstream representation.
func (t Ticker) Wire() ([]byte, error) {
	return json.Marshal(tickerWire{
		Last:   t.LastPrice,
		High:   t.HighPrice,
		Low:    t.LowPrice,
		Ask:    t.AskPrice,
		Bid:    t.BidPrice,
		Volume: t.Volume,
	})
}

// LastPrice holds just the current closing price of a currency pair.
type LastPrice struct {
	Price decimal.Decimal `json:"last_price"`
}

// ParseLastPrice normalizes a last-price response body.
func ParseLastPrice(data []byte) (LastPrice, error) {
	var lp LastPrice
	if err := json.Unmarshal(data, &lp); err != nil {
		return LastPrice{}, fmt.Errorf("last price: %w", err)
	}
	return lp, nil
}

// Wire converts the last price back to its upstream representation.
func (lp LastPrice) Wire() ([]byte, error) {
	return json.Marshal(lp)
}

// OrderBookItem is one (price, quantity) level of the book.
type OrderBookItem struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// OrderBook holds the market depth for one currency pair. Levels keep the
// order the exchange sent them in; no re-sorting is applied.
type OrderBook struct {
	Asks []OrderBookItem `json:"asks"`
	Bids []OrderBookItem `json:"bids"`
}

type orderBookWire struct {
	Asks [][2]decimal.Decimal `json:"asks"`
	Bids [][2]decimal.Decimal `json:"bids"`
}

// ParseOrderBook normalizes a depth response body.
func ParseOrderBook(data []byte) (OrderBook, error) {
	var w orderBookWire
	if err := json.Unmarshal(data, &w); err != nil {
		return OrderBook{}, fmt.Errorf("order book: %w", err)
	}
	return OrderBook{
		Asks: bookLevels(w.Asks),
		Bids: bookLevels(w.Bids),
	}, nil
}

// Wire converts the book back to its upstream [[price, quantity], ...] form.
func (b OrderBook) Wire() ([]byte, error) {
	return json.Marshal(orderBookWire{
		Asks: bookPairs(b.Asks),
		Bids: bookPairs(b.Bids),
	})
}

func bookLevels(pairs [][2]decimal.Decimal) []OrderBookItem {
	items := make([]OrderBookItem, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, OrderBookItem{Price: p[0], Quantity: p[1]})
	}
	return items
}

func bookPairs(items []OrderBookItem) [][2]decimal.Decimal {
	pairs := make([][2]decimal.Decimal, 0, len(items))
	for _, it := range items {
		pairs = append(pairs, [2]decimal.Decimal{it.Price, it.Quantity})
	}
	return pairs
}

// Currency describes one listed currency.
type Currency struct {
	Name    string `json:"name"`
	IsToken bool   `json:"is_token"`
}

// ParseCurrencies normalizes a currency-list response body.
func ParseCurrencies(data []byte) ([]Currency, error) {
	var currencies []Currency
	if err := json.Unmarshal(data, &currencies); err != nil {
		return nil, fmt.Errorf("currencies: %w", err)
	}
	return currencies, nil
}

// CurrencyPair describes one trading pair and its order constraints.
type CurrencyPair struct {
	CurrencyPair   string          `json:"currency_pair"`  // pair identifier, e.g. "btc_jpy"
	MinQuantity    decimal.Decimal `json:"min_quantity"`   // minimum order quantity
	QuantityStep   decimal.Decimal `json:"quantity_step"`  // order quantity increment
	MinPrice       decimal.Decimal `json:"min_price"`      // minimum order price
	PriceStep      decimal.Decimal `json:"price_step"`     // order price increment
	PricePrecision int             `json:"price_precision"` // decimal places shown for prices
	DisplayName    string          `json:"display_name"`   // "<base name>/<quote name>"
}

// currencyPairWire carries the upstream field names. item_* fields describe
// the base currency, aux_* fields the quote currency.
type currencyPairWire struct {
	CurrencyPair string          `json:"currency_pair"`
	BaseName     string          `json:"item_japanese"`
	QuoteName    string          `json:"aux_japanese"`
	MinQuantity  decimal.Decimal `json:"item_unit_min"`
	QuantityStep decimal.Decimal `json:"item_unit_step"`
	MinPrice     decimal.Decimal `json:"aux_unit_min"`
	PriceStep    decimal.Decimal `json:"aux_unit_step"`
	PricePoint   int             `json:"aux_unit_point"`
}

// ParseCurrencyPair normalizes one currency-pair entry.
func ParseCurrencyPair(data []byte) (CurrencyPair, error) {
	var w currencyPairWire
	if err := json.Unmarshal(data, &w); err != nil {
		return CurrencyPair{}, fmt.Errorf("currency pair: %w", err)
	}
	return CurrencyPair{
		CurrencyPair:   w.CurrencyPair,
		MinQuantity:    w.MinQuantity,
		QuantityStep:   w.QuantityStep,
		MinPrice:       w.MinPrice,
		PriceStep:      w.PriceStep,
		PricePrecision: w.PricePoint,
		DisplayName:    w.BaseName + "/" + w.QuoteName,
	}, nil
}

// ParseCurrencyPairs normalizes a currency-pair list response body.
func ParseCurrencyPairs(data []byte) ([]CurrencyPair, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("currency pairs: %w", err)
	}
	pairs := make([]CurrencyPair, 0, len(raw))
	for _, item := range raw {
		p, err := ParseCurrencyPair(item)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// Wire converts the pair back to its upstream representation. The display
// name splits back into base and quote currency names.
func (p CurrencyPair) Wire() ([]byte, error) {
	base, quote, _ := strings.Cut(p.DisplayName, "/")
	return json.Marshal(currencyPairWire{
		CurrencyPair: p.CurrencyPair,
		BaseName:     base,
		QuoteName:    quote,
		MinQuantity:  p.MinQuantity,
		QuantityStep: p.QuantityStep,
		MinPrice:     p.MinPrice,
		PriceStep:    p.PriceStep,
		PricePoint:   p.PricePrecision,
	})
}
