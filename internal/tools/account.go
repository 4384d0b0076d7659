package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/curio184/zaifer-mcp/internal/zaif"
)

func registerAccountTools(s *server.MCPServer, api *zaif.API) {
	s.AddTool(mcp.NewTool("get_account_balance",
		mcp.WithDescription("Get the account's balance for every currency, plus the API key's "+
			"permission flags. Requires ZAIF_API_KEY and ZAIF_API_SECRET to be configured."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := requireAuth(api); err != nil {
			return failure("get_account_balance", err)
		}

		balance, err := api.Account.GetBalance(ctx)
		if err != nil {
			return failure("get_account_balance", err)
		}
		return result(balance)
	})
}
