package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wandur-labs/wandur-analytics/pkg/server"
	"github.com/wandur-labs/wandur-analytics/pkg/services/analytics"
	"github.com/wandur-labs/wandur-analytics/pkg/services/config"
	"github.com/wandur-labs/wandur-analytics/pkg/services/recommend"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Wandur analytics web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "wandur.yaml",
		"Path to the app config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := airtable.NewClient(airtable.Settings{
		BaseURL: cfg.Airtable.BaseURL,
		BaseID:  cfg.Airtable.BaseID,
		APIKey:  cfg.Airtable.APIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create record source client: %w", err)
	}

	recordStore := airtable.NewStore(client)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Store:     recordStore,
			Records:   client,
			Analytics: analytics.NewProcessor(recordStore),
			Selector:  recommend.NewSelector(recordStore),
		},
	})

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	return webAPI.Start()
}
