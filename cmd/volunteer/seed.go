package main

import (
	"context"
	"fmt"
	"time"

	"volunteer/internal/db"
	"volunteer/internal/seed"
	"volunteer/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with option groups, the sign-up profile and a demo project",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		// Connect to database
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		logrus.Info("Seeding option groups...")
		if err := seed.SeedOptions(ctx, store.NewOptionRepository(pool)); err != nil {
			return fmt.Errorf("failed to seed option groups: %w", err)
		}

		logrus.Info("Seeding sign-up profile...")
		if err := seed.SeedProfile(ctx, store.NewProfileRepository(pool), cfg.ProfileName); err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}

		logrus.Info("Seeding demo project...")
		if err := seed.SeedDemoProject(ctx, store.NewProjectRepository(pool), store.NewNeedRepository(pool), time.Now()); err != nil {
			return fmt.Errorf("failed to seed demo project: %w", err)
		}

		logrus.WithField("vid", seed.DemoProjectID).Info("Seed complete")

		return nil
	},
}
