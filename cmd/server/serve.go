package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paytm-mcp/internal/checksum"
	"paytm-mcp/internal/config"
	"paytm-mcp/internal/daterange"
	"paytm-mcp/internal/gateway"
	"paytm-mcp/internal/logger"
	"paytm-mcp/internal/mcp"
	"paytm-mcp/internal/middleware"
	"paytm-mcp/internal/order"
	"paytm-mcp/internal/payment"
	"paytm-mcp/internal/refund"
	"paytm-mcp/internal/tools"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var transport, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server on stdio or HTTP.

Examples:
  paytm-mcp serve
  paytm-mcp serve --transport stdio
  paytm-mcp serve --port 9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if transport != "" {
				cfg.Server.Transport = transport
			}
			if port != "" {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger.Init(cfg.AppEnv)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "MCP transport: http or stdio (overrides MCP_TRANSPORT)")
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides PORT)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.L()
	log.Info("starting paytm mcp server",
		zap.String("transport", cfg.Server.Transport),
		zap.String("merchant", cfg.Credentials.MerchantID),
		zap.String("gateway", cfg.Gateway.BaseURL),
		zap.Int("max_attempts", cfg.Gateway.MaxRetries),
	)
	if cfg.Gateway.RefundRetry {
		log.Warn("refund initiation retries enabled; duplicates rely on refund_reference_id deduplication by the gateway")
	}

	server := buildServer(cfg)

	if cfg.Server.Transport == config.TransportStdio {
		return server.Serve(ctx, os.Stdin, os.Stdout)
	}
	return serveHTTP(ctx, cfg, server)
}

// buildServer wires the gateway client, services and tool facade.
func buildServer(cfg *config.Config, opts ...gateway.Option) *mcp.Server {
	opts = append([]gateway.Option{gateway.WithRateLimit(cfg.Gateway.RateLimit, int(cfg.Gateway.RateLimit))}, opts...)
	client := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, opts...)
	signer := checksum.NewPaytm()
	policy := gateway.RetryPolicy{
		MaxAttempts: cfg.Gateway.MaxRetries,
		Backoff:     gateway.LinearBackoff(cfg.Gateway.RetryDelay),
	}

	facade := tools.NewFacade(
		payment.NewService(cfg.Credentials, signer, client, policy),
		refund.NewService(cfg.Credentials, signer, client, policy, cfg.Gateway.RefundRetry),
		order.NewService(cfg.Credentials, signer, client, policy),
		daterange.NewResolver(),
	)
	return mcp.NewServer(facade, tools.Definitions())
}

func serveHTTP(ctx context.Context, cfg *config.Config, server *mcp.Server) error {
	log := logger.L()

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	go limiter.Run(ctx, time.Minute, 3*time.Minute)

	if cfg.Server.JWTSecret == "" && cfg.Server.APIKeyHash == "" {
		log.Warn("MCP endpoint is unauthenticated; set MCP_JWT_SECRET or MCP_API_KEY_HASH")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           setupRouter(cfg.Server, server, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("MCP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
