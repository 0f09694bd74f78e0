package commands

import (
	"context"

	"github.com/wandur-labs/wandur-analytics/pkg/services/analytics"
	"github.com/wandur-labs/wandur-analytics/pkg/services/datagen"
	"github.com/wandur-labs/wandur-analytics/pkg/services/recommend"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

// Services are the wired dependencies a command runs against.
type Services struct {
	Store     airtable.Store
	Analytics analytics.Processor
	Selector  recommend.Selector
	Generator *datagen.Generator
}

// Factory builds Services from a config file path. Commands defer
// construction to the composition root so flags are parsed before any
// credentials are read.
type Factory func(ctx context.Context, cfgPath string) (*Services, error)
