package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/curio184/zaifer-mcp/internal/model"
	"github.com/curio184/zaifer-mcp/internal/zaif"
)

type pairArgs struct {
	CurrencyPair string `validate:"required,oneof=btc_jpy eth_jpy xym_jpy"`
}

func registerMarketTools(s *server.MCPServer, api *zaif.API) {
	s.AddTool(mcp.NewTool("get_ticker",
		mcp.WithDescription("Get current market price statistics for a currency pair: "+
			"last trade price, 24h high/low, best ask/bid, and 24h volume. "+
			"Useful for checking the current price before placing an order."),
		mcp.WithString("currency_pair",
			mcp.Required(),
			mcp.Description("Currency pair to query"),
			mcp.Enum("btc_jpy", "eth_jpy", "xym_jpy"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pair, err := req.RequireString("currency_pair")
		if err != nil {
			return failure("get_ticker", err)
		}
		if err := checkArgs(pairArgs{CurrencyPair: pair}); err != nil {
			return failure("get_ticker", err)
		}

		ticker, err := api.Market.GetTicker(ctx, pair)
		if err != nil {
			return failure("get_ticker", err)
		}
		return result(ticker)
	})

	s.AddTool(mcp.NewTool("get_market_depth",
		mcp.WithDescription("Get the order book for a currency pair: all resting asks and bids "+
			"with price and quantity, in exchange order. This is the whole market's open "+
			"orders, not your own (use get_open_orders for those)."),
		mcp.WithString("currency_pair",
			mcp.Required(),
			mcp.Description("Currency pair to query"),
			mcp.Enum("btc_jpy", "eth_jpy", "xym_jpy"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pair, err := req.RequireString("currency_pair")
		if err != nil {
			return failure("get_market_depth", err)
		}
		if err := checkArgs(pairArgs{CurrencyPair: pair}); err != nil {
			return failure("get_market_depth", err)
		}

		book, err := api.Market.GetDepth(ctx, pair)
		if err != nil {
			return failure("get_market_depth", err)
		}
		return result(book)
	})

	s.AddTool(mcp.NewTool("get_currency_pairs",
		mcp.WithDescription("List the supported currency pairs with their order constraints: "+
			"minimum quantity, quantity step, minimum price, price step, and price display "+
			"precision. Check these before computing order parameters."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		all, err := api.Market.GetCurrencyPairs(ctx, "all")
		if err != nil {
			return failure("get_currency_pairs", err)
		}

		supported := make([]model.CurrencyPair, 0, len(model.SupportedPairs))
		for _, p := range all {
			if model.IsSupportedPair(p.CurrencyPair) {
				supported = append(supported, p)
			}
		}
		return result(supported)
	})
}
