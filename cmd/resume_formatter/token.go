package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-formatter/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the stored-resume API",
	Long:  `Signs a JWT with the configured secret (RF_JWT_SECRET) for an API client.`,
	RunE:  runToken,
}

var (
	tokenClientID string
	tokenName     string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenClientID, "client-id", "", "Client UUID (default: a new random UUID)")
	tokenCmd.Flags().StringVarP(&tokenName, "name", "n", "", "Client name (required)")

	_ = tokenCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jwtConfig, err := cfg.JWT()
	if err != nil {
		return err
	}

	clientID := uuid.New()
	if tokenClientID != "" {
		clientID, err = uuid.Parse(tokenClientID)
		if err != nil {
			return fmt.Errorf("invalid client-id: %w", err)
		}
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(clientID, tokenName)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
