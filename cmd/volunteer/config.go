package main

import (
	"fmt"

	"volunteer/internal/signup"
	"volunteer/internal/store"
	"volunteer/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the environment. Variables may carry the --env-prefix,
// e.g. VOLUNTEER_DATABASE_URL, or be unprefixed.
func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(cCtx.String("env-prefix"), c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}

func newBackend(pool *pgxpool.Pool, config *types.Config) signup.Backend {
	return signup.Backend{
		Projects:   store.NewProjectRepository(pool),
		Needs:      store.NewNeedRepository(pool),
		Options:    store.NewOptionRepository(pool),
		Profiles:   store.NewProfileRepository(pool),
		Contacts:   store.NewContactRepository(pool),
		Activities: store.NewActivityRepository(pool),
		Times:      signup.NewShiftFormatter(config.ShiftDateLayout, config.ShiftTimeLayout),
	}
}
