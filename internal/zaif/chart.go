package zaif

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/curio184/zaifer-mcp/internal/model"
)

// ChartAPI serves the public OHLC history endpoint.
type ChartAPI struct {
	client  *Client
	baseURL string
}

// GetOHLC fetches the candle series for one pair and resolution over
// [from, to]. period is a resolution key: minutes as "1".."720", or "D"/"W".
//
// The chart endpoint sometimes returns its JSON payload wrapped in a JSON
// string, so the body may need a second decode pass before normalization.
func (c *ChartAPI) GetOHLC(ctx context.Context, currencyPair, period string, from, to time.Time) (model.PriceChartData, error) {
	query := url.Values{}
	query.Set("symbol", currencyPair)
	query.Set("resolution", period)
	query.Set("from", strconv.FormatInt(from.Unix(), 10))
	query.Set("to", strconv.FormatInt(to.Unix(), 10))

	body, err := c.client.Get(ctx, c.baseURL+"/history", query)
	if err != nil {
		return model.PriceChartData{}, err
	}
	body, err = unwrapDoubleEncoded(body)
	if err != nil {
		return model.PriceChartData{}, err
	}

	chart, err := model.ParsePriceChart(body, currencyPair, period,
		from.Format(time.RFC3339), to.Format(time.RFC3339))
	if err != nil {
		return model.PriceChartData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return chart, nil
}

// unwrapDoubleEncoded peels one layer of string encoding off a body like
// "\"{\\\"ohlc_data\\\": ...}\"" and leaves regular bodies untouched.
func unwrapDoubleEncoded(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return body, nil
	}
	var inner string
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return nil, fmt.Errorf("%w: nested chart body: %v", ErrDecode, err)
	}
	return []byte(inner), nil
}
