package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"paytm-mcp/internal/auth"
	"paytm-mcp/internal/config"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var client string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP MCP endpoint (signed with MCP_JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv()
			if client == "" {
				return errors.New("--client is required")
			}
			tok, err := auth.GenerateToken(os.Getenv("MCP_JWT_SECRET"), client, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "name of the agent the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime")

	return cmd
}

func hashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key [api-key]",
		Short: "Print the bcrypt hash to put in MCP_API_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashAPIKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
