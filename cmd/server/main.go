/*
Package main runs the Zaif MCP gateway.

The gateway exposes the Zaif cryptocurrency exchange's REST API as MCP tools
so a language-model agent can query market data, check balances, and place or
cancel orders. API credentials come from the ZAIF_API_KEY and ZAIF_API_SECRET
environment variables, optionally loaded from an env file; without them the
public market and chart tools still work and authenticated tools fail with a
clear error.

Usage:

	go run main.go -transport=stdio -env-file=.env
	go run main.go -transport=streamable-http -host=0.0.0.0 -port=8000

Logs go to stderr: with the stdio transport, stdout belongs to the MCP
protocol stream.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/curio184/zaifer-mcp/internal/tools"
	"github.com/curio184/zaifer-mcp/internal/zaif"
)

const (
	serverName    = "ZaiferAPI"
	serverVersion = "1.0.0"
)

var (
	transport = flag.String("transport", "stdio", "MCP transport: stdio or streamable-http")
	host      = flag.String("host", "0.0.0.0", "Host to bind when using the streamable-http transport")
	port      = flag.Int("port", 8000, "Port to bind when using the streamable-http transport")
	envFile   = flag.String("env-file", ".env", "Path to an env file with ZAIF_API_KEY and ZAIF_API_SECRET")
	debug     = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := validateConfig(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	loadEnvironment(*envFile)

	api := zaif.New(loadCredentials(), zaif.Options{})
	if !api.Authenticated() {
		log.Warn().Msg("ZAIF_API_KEY / ZAIF_API_SECRET not set; trading and account tools will be unavailable")
	}

	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tools.RegisterAll(s, api)

	log.Info().
		Str("server", serverName).
		Str("transport", *transport).
		Msg("starting zaifer-mcp server")

	switch *transport {
	case "stdio":
		if err := server.ServeStdio(s); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	case "streamable-http":
		addr := net.JoinHostPort(*host, strconv.Itoa(*port))
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.NewStreamableHTTPServer(s).Start(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}
}

// validateConfig checks the command-line flags before anything starts.
func validateConfig() error {
	switch *transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, streamable-http)", *transport)
	}
	if *port <= 0 || *port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", *port)
	}
	if *host == "" {
		return errors.New("host cannot be empty")
	}
	return nil
}

// loadEnvironment loads variables from the env file when it exists. A
// missing file is fine: credentials may come from the real environment.
func loadEnvironment(path string) {
	if _, err := os.Stat(path); err != nil {
		log.Debug().Str("path", path).Msg("env file not found, using process environment")
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to load env file")
	}
}

// loadCredentials reads the API key pair from the environment, returning nil
// when either half is missing so the gateway runs in public-only mode.
func loadCredentials() *zaif.Credentials {
	key := os.Getenv("ZAIF_API_KEY")
	secret := os.Getenv("ZAIF_API_SECRET")
	if key == "" || secret == "" {
		return nil
	}
	return &zaif.Credentials{Key: key, Secret: secret}
}
