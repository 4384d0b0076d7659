package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/curio184/zaifer-mcp/internal/zaif"
)

type chartArgs struct {
	CurrencyPair string `validate:"required,oneof=btc_jpy eth_jpy xym_jpy"`
	Timeframe    string `validate:"required,oneof=1 5 15 30 60 240 480 720 D W"`
	StartDate    string `validate:"required"`
	EndDate      string `validate:"required"`
}

func registerChartTools(s *server.MCPServer, api *zaif.API) {
	s.AddTool(mcp.NewTool("get_price_chart",
		mcp.WithDescription("Get OHLC candle data for a currency pair over a date range, for "+
			"trend analysis and order timing. Pick a resolution matching the range: minute "+
			"resolutions suit hours to a day, hourly suits weeks, daily suits months. Very "+
			"long ranges at fine resolutions return a lot of data."),
		mcp.WithString("currency_pair",
			mcp.Required(),
			mcp.Description("Currency pair to chart"),
			mcp.Enum("btc_jpy", "eth_jpy", "xym_jpy"),
		),
		mcp.WithString("timeframe",
			mcp.Required(),
			mcp.Description("Candle resolution: minutes ('1','5','15','30','60','240','480','720'), 'D' daily, 'W' weekly"),
			mcp.Enum("1", "5", "15", "30", "60", "240", "480", "720", "D", "W"),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Range start, ISO format 'YYYY-MM-DDTHH:MM:SS'"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("Range end, ISO format 'YYYY-MM-DDTHH:MM:SS'"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := chartArgs{
			CurrencyPair: req.GetString("currency_pair", ""),
			Timeframe:    req.GetString("timeframe", ""),
			StartDate:    req.GetString("start_date", ""),
			EndDate:      req.GetString("end_date", ""),
		}
		if err := checkArgs(args); err != nil {
			return failure("get_price_chart", err)
		}
		from, err := parseDate(args.StartDate)
		if err != nil {
			return failure("get_price_chart", err)
		}
		to, err := parseDate(args.EndDate)
		if err != nil {
			return failure("get_price_chart", err)
		}

		chart, err := api.Chart.GetOHLC(ctx, args.CurrencyPair, args.Timeframe, from, to)
		if err != nil {
			return failure("get_price_chart", err)
		}
		return result(chart)
	})
}
