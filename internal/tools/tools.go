// Package tools adapts the Zaif API facade to MCP tools. Handlers are thin:
// they validate arguments, guard authenticated calls before any network
// activity, invoke the facade, filter responses down to the supported
// currency pairs, and hand the normalized record back to the MCP runtime as
// JSON. This is the only layer that validates caller input.
package tools

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/curio184/zaifer-mcp/internal/zaif"
)

// validate checks the per-tool argument structs; rules live in their
// `validate` tags.
var validate = validator.New()

// Argument layouts accepted by ISO-date parameters.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// RegisterAll registers every tool of the gateway on s.
func RegisterAll(s *server.MCPServer, api *zaif.API) {
	registerMarketTools(s, api)
	registerAccountTools(s, api)
	registerTradeTools(s, api)
	registerChartTools(s, api)
}

// requireAuth returns ErrUnauthenticated when no credentials are configured.
// Handlers call it first so authenticated tools fail before any network call.
func requireAuth(api *zaif.API) error {
	if !api.Authenticated() {
		return zaif.ErrUnauthenticated
	}
	return nil
}

// checkArgs runs the validator over an argument struct and converts failures
// to ErrValidation.
func checkArgs(args any) error {
	if err := validate.Struct(args); err != nil {
		return fmt.Errorf("%w: %v", zaif.ErrValidation, err)
	}
	return nil
}

// result serializes a normalized record as the tool's JSON text content.
func result(record any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// failure converts any gateway error into the uniform "request failed" tool
// result. Every error kind crosses this boundary the same way; only the
// message differs.
func failure(tool string, err error) (*mcp.CallToolResult, error) {
	if !errors.Is(err, zaif.ErrValidation) && !errors.Is(err, zaif.ErrUnauthenticated) {
		log.Error().Str("tool", tool).Err(err).Msg("tool call failed")
	}
	return mcp.NewToolResultErrorFromErr("request failed", err), nil
}

// parseDate reads an ISO-8601 date or datetime in local time.
func parseDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", zaif.ErrValidation, value)
	}
	return t, nil
}

// endOfDay pins a date to 23:59:59 so the whole day is included in an
// inclusive upper bound.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
