package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/curio184/zaifer-mcp/internal/model"
	"github.com/curio184/zaifer-mcp/internal/zaif"
)

type placeOrderArgs struct {
	CurrencyPair string  `validate:"required,oneof=btc_jpy eth_jpy xym_jpy"`
	OrderType    string  `validate:"required,oneof=bid ask"`
	Price        float64 `validate:"required,gt=0"`
	Quantity     float64 `validate:"required,gt=0"`
}

type optionalPairArgs struct {
	CurrencyPair string `validate:"omitempty,oneof=btc_jpy eth_jpy xym_jpy"`
}

func registerTradeTools(s *server.MCPServer, api *zaif.API) {
	s.AddTool(mcp.NewTool("place_order",
		mcp.WithDescription("Place a limit order. Returns the immediately filled quantity, the "+
			"unfilled remainder, the resting order id (0 when fully filled), and the balances "+
			"after the order. Requires API credentials."),
		mcp.WithString("currency_pair",
			mcp.Required(),
			mcp.Description("Currency pair to trade"),
			mcp.Enum("btc_jpy", "eth_jpy", "xym_jpy"),
		),
		mcp.WithString("order_type",
			mcp.Required(),
			mcp.Description("Order side: 'bid' buys, 'ask' sells"),
			mcp.Enum("bid", "ask"),
		),
		mcp.WithNumber("price",
			mcp.Required(),
			mcp.Description("Limit price per unit, in JPY"),
		),
		mcp.WithNumber("quantity",
			mcp.Required(),
			mcp.Description("Quantity of the base currency to trade"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := requireAuth(api); err != nil {
			return failure("place_order", err)
		}

		args := placeOrderArgs{
			CurrencyPair: req.GetString("currency_pair", ""),
			OrderType:    req.GetString("order_type", ""),
			Price:        req.GetFloat("price", 0),
			Quantity:     req.GetFloat("quantity", 0),
		}
		if err := checkArgs(args); err != nil {
			return failure("place_order", err)
		}

		resp, err := api.Trade.PlaceOrder(ctx, args.CurrencyPair, args.OrderType,
			decimal.NewFromFloat(args.Price), decimal.NewFromFloat(args.Quantity))
		if err != nil {
			return failure("place_order", err)
		}
		return result(resp)
	})

	s.AddTool(mcp.NewTool("cancel_order",
		mcp.WithDescription("Cancel a resting order by id. The currency pair is optional; when "+
			"omitted the exchange resolves the order by id alone. Requires API credentials."),
		mcp.WithNumber("order_id",
			mcp.Required(),
			mcp.Description("Id of the order to cancel (see get_open_orders)"),
		),
		mcp.WithString("currency_pair",
			mcp.Description("Currency pair of the order"),
			mcp.Enum("btc_jpy", "eth_jpy", "xym_jpy"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := requireAuth(api); err != nil {
			return failure("cancel_order", err)
		}

		orderID, err := req.RequireInt("order_id")
		if err != nil {
			return failure("cancel_order", err)
		}
		pair := req.GetString("currency_pair", "")
		if err := checkArgs(optionalPairArgs{CurrencyPair: pair}); err != nil {
			return failure("cancel_order", err)
		}

		resp, err := api.Trade.CancelOrder(ctx, int64(orderID), pair, false)
		if err != nil {
			return failure("cancel_order", err)
		}
		return result(resp)
	})

	s.AddTool(mcp.NewTool("get_open_orders",
		mcp.WithDescription("List your resting (unfilled or partly filled) orders, keyed by "+
			"order id. Optionally limited to one currency pair. Requires API credentials."),
		mcp.WithString("currency_pair",
			mcp.Description("Currency pair to filter by; omit for all pairs"),
			mcp.Enum("btc_jpy", "eth_jpy", "xym_jpy"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := requireAuth(api); err != nil {
			return failure("get_open_orders", err)
		}

		pair := req.GetString("currency_pair", "")
		if err := checkArgs(optionalPairArgs{CurrencyPair: pair}); err != nil {
			return failure("get_open_orders", err)
		}

		orders, err := api.Trade.GetActiveOrders(ctx, pair)
		if err != nil {
			return failure("get_open_orders", err)
		}

		filtered := model.OpenOrderList{OpenOrders: map[int64]model.OpenOrder{}}
		for id, order := range orders.OpenOrders {
			if model.IsSupportedPair(order.CurrencyPair) {
				filtered.OpenOrders[id] = order
			}
		}
		return result(filtered)
	})

	s.AddTool(mcp.NewTool("get_trade_executions",
		mcp.WithDescription("List your filled trades, newest first. Each execution carries the "+
			"derived trade side (buy/sell/self) and market role (maker/taker/both), the price, "+
			"quantity, and fee. Optionally filter by pair and date range. Requires API credentials."),
		mcp.WithString("currency_pair",
			mcp.Description("Currency pair to filter by; omit for all pairs"),
			mcp.Enum("btc_jpy", "eth_jpy", "xym_jpy"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of executions to return (default 20)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Include trades on or after this date, e.g. '2023-01-01'"),
		),
		mcp.WithString("end_date",
			mcp.Description("Include trades through the end of this date, e.g. '2023-12-31'"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := requireAuth(api); err != nil {
			return failure("get_trade_executions", err)
		}

		pair := req.GetString("currency_pair", "")
		if err := checkArgs(optionalPairArgs{CurrencyPair: pair}); err != nil {
			return failure("get_trade_executions", err)
		}

		opts := zaif.TradeHistoryOptions{
			CurrencyPair: pair,
			Count:        req.GetInt("limit", 20),
		}
		if startDate := req.GetString("start_date", ""); startDate != "" {
			start, err := parseDate(startDate)
			if err != nil {
				return failure("get_trade_executions", err)
			}
			opts.Since = start.Unix()
		}
		if endDate := req.GetString("end_date", ""); endDate != "" {
			end, err := parseDate(endDate)
			if err != nil {
				return failure("get_trade_executions", err)
			}
			opts.End = endOfDay(end).Unix()
		}

		history, err := api.Trade.GetTradeHistory(ctx, opts)
		if err != nil {
			return failure("get_trade_executions", err)
		}

		filtered := model.TradeExecutionList{Executions: make([]model.TradeExecution, 0, len(history.Executions))}
		for _, e := range history.Executions {
			if model.IsSupportedPair(e.CurrencyPair) {
				filtered.Executions = append(filtered.Executions, e)
			}
		}
		return result(filtered)
	})
}
