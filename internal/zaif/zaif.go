package zaif

import "net/http"

// Default endpoint roots. The market and chart APIs are public; the trade
// root serves both the account and trading namespaces.
const (
	DefaultMarketURL = "https://api.zaif.jp/api"
	DefaultTradeURL  = "https://api.zaif.jp/tapi"
	DefaultChartURL  = "https://zaif.jp/zaif_chart_api/v1"
)

// API groups the four Zaif namespaces over one shared client.
type API struct {
	client *Client

	Market  *MarketAPI
	Account *AccountAPI
	Trade   *TradeAPI
	Chart   *ChartAPI
}

// Options override the endpoint roots and HTTP client, mainly for tests.
type Options struct {
	MarketURL  string
	TradeURL   string
	ChartURL   string
	HTTPClient *http.Client
}

// New builds the full API facade. creds may be nil to run with only the
// public market and chart namespaces usable; authenticated calls then fail
// with ErrUnauthenticated before any network activity.
func New(creds *Credentials, opts Options) *API {
	if opts.MarketURL == "" {
		opts.MarketURL = DefaultMarketURL
	}
	if opts.TradeURL == "" {
		opts.TradeURL = DefaultTradeURL
	}
	if opts.ChartURL == "" {
		opts.ChartURL = DefaultChartURL
	}

	client := NewClient(creds, opts.HTTPClient)
	return &API{
		client:  client,
		Market:  &MarketAPI{client: client, baseURL: opts.MarketURL},
		Account: &AccountAPI{client: client, baseURL: opts.TradeURL},
		Trade:   &TradeAPI{client: client, baseURL: opts.TradeURL},
		Chart:   &ChartAPI{client: client, baseURL: opts.ChartURL},
	}
}

// Authenticated reports whether API credentials are configured.
func (a *API) Authenticated() bool {
	return a.client.Authenticated()
}
