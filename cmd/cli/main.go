package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/wandur-labs/wandur-analytics/pkg/runtime/terminal"
	"github.com/wandur-labs/wandur-analytics/pkg/runtime/terminal/commands"
	"github.com/wandur-labs/wandur-analytics/pkg/services/analytics"
	"github.com/wandur-labs/wandur-analytics/pkg/services/config"
	"github.com/wandur-labs/wandur-analytics/pkg/services/datagen"
	"github.com/wandur-labs/wandur-analytics/pkg/services/recommend"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

func main() {
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Factory: wireServices,
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func wireServices(_ context.Context, cfgPath string) (*commands.Services, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := airtable.NewClient(airtable.Settings{
		BaseURL: cfg.Airtable.BaseURL,
		BaseID:  cfg.Airtable.BaseID,
		APIKey:  cfg.Airtable.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create record source client: %w", err)
	}

	recordStore := airtable.NewStore(client)

	return &commands.Services{
		Store:     recordStore,
		Analytics: analytics.NewProcessor(recordStore),
		Selector:  recommend.NewSelector(recordStore),
		Generator: datagen.NewGenerator(client),
	}, nil
}
