package model

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// CandlestickData is one OHLC candle. The timestamp is normalized from the
// upstream millisecond epoch to local time and serializes as ISO-8601.
type CandlestickData struct {
	Timestamp  time.Time       `json:"timestamp"`
	OpenPrice  decimal.Decimal `json:"open_price"`
	HighPrice  decimal.Decimal `json:"high_price"`
	LowPrice   decimal.Decimal `json:"low_price"`
	ClosePrice decimal.Decimal `json:"close_price"`
	Volume     decimal.Decimal `json:"volume"`
}

// PriceChartData is a chart query result: the requested pair and range plus
// the candle series in upstream order.
type PriceChartData struct {
	CurrencyPair string            `json:"currency_pair"`
	Timeframe    string            `json:"timeframe"` // display label, e.g. "1 hour"
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	Candlesticks []CandlestickData `json:"candlesticks"`
	DataCount    int               `json:"data_count"`
}

type candleWire struct {
	Time   int64           `json:"time"` // epoch milliseconds
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

type priceChartWire struct {
	OHLCData  []candleWire `json:"ohlc_data"`
	DataCount int          `json:"data_count"`
}

// ParsePriceChart normalizes a chart history response body. The timeframe is
// the raw resolution ("1".."720", "D", "W") and is stored as its display
// label; start and end are the caller's ISO-8601 range bounds.
func ParsePriceChart(data []byte, currencyPair, timeframe, startDate, endDate string) (PriceChartData, error) {
	var w priceChartWire
	if err := json.Unmarshal(data, &w); err != nil {
		return PriceChartData{}, fmt.Errorf("price chart: %w", err)
	}

	candles := make([]CandlestickData, 0, len(w.OHLCData))
	for _, c := range w.OHLCData {
		candles = append(candles, CandlestickData{
			Timestamp:  time.UnixMilli(c.Time),
			OpenPrice:  c.Open,
			HighPrice:  c.High,
			LowPrice:   c.Low,
			ClosePrice: c.Close,
			Volume:     c.Volume,
		})
	}

	return PriceChartData{
		CurrencyPair: currencyPair,
		Timeframe:    TimeframeName(timeframe),
		StartDate:    startDate,
		EndDate:      endDate,
		Candlesticks: candles,
		DataCount:    w.DataCount,
	}, nil
}

// Wire converts the chart back to its upstream representation. Candle
// timestamps invert exactly to epoch milliseconds.
func (p PriceChartData) Wire() ([]byte, error) {
	out := priceChartWire{
		OHLCData:  make([]candleWire, 0, len(p.Candlesticks)),
		DataCount: p.DataCount,
	}
	for _, c := range p.Candlesticks {
		out.OHLCData = append(out.OHLCData, candleWire{
			Time:   c.Timestamp.UnixMilli(),
			Open:   c.OpenPrice,
			High:   c.HighPrice,
			Low:    c.LowPrice,
			Close:  c.ClosePrice,
			Volume: c.Volume,
		})
	}
	return json.Marshal(out)
}
