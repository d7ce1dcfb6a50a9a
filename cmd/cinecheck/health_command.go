package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BaSui01/cinecheck/config"
	"github.com/BaSui01/cinecheck/llm"
	"github.com/BaSui01/cinecheck/providers"
	"github.com/BaSui01/cinecheck/providers/gemini"
)

func newHealthCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check reachability of the generation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().WithConfigPath(*configFlag).Load()
			if err != nil {
				return err
			}

			cred, ok := llm.ResolveAPIKey()
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(),
					"Skipped: no API key found. Set %s or %s to enable the health check.\n",
					llm.EnvGoogleAPIKey, llm.EnvGeminiAPIKey)
				return nil
			}

			logger, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			provider := gemini.NewGeminiProvider(providers.GeminiConfig{
				APIKey:  cred.APIKey,
				BaseURL: cfg.LLM.BaseURL,
				Model:   cfg.LLM.Model,
				Timeout: cfg.LLM.Timeout,
			}, logger)

			status, err := provider.HealthCheck(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed after %s: %w", status.Latency, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s healthy (latency %s)\n", provider.Name(), status.Latency)
			return nil
		},
	}
}
