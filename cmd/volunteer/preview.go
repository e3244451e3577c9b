package main

import (
	"context"
	"fmt"

	"volunteer/internal/db"
	"volunteer/internal/signup"
	"volunteer/internal/store"
	"volunteer/internal/utils"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var previewCommand = &cli.Command{
	Name:  "preview",
	Usage: "Print the sign-up form a project would render",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:     "vid",
			Usage:    "Project id",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "action",
			Usage: "Optional action, e.g. preview",
		},
		&cli.Int64Flag{
			Name:  "contact-id",
			Usage: "Render as this session contact",
		},
	},
	Action: preview,
}

func preview(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	controller := signup.New(newBackend(pool, cfg), signup.Options{
		ProfileName:       cfg.ProfileName,
		FlexibleRoleLabel: cfg.FlexibleRoleLabel,
	}, logrus.StandardLogger())

	if err := controller.Initialize(ctx, c.Int64("vid"), c.String("action")); err != nil {
		return err
	}

	var contactID *int64
	if id := c.Int64("contact-id"); id > 0 {
		contactID = utils.Int64Ptr(id)
	}

	form, err := controller.BuildForm(ctx, contactID)
	if err != nil {
		return err
	}

	pp.Println(form)

	activities := store.NewActivityRepository(pool)
	fmt.Println("\nSign ups per shift:")
	for _, shift := range controller.Shifts() {
		signups, err := activities.ActivitiesByNeed(ctx, shift.Value, form.Mode.IsTest())
		if err != nil {
			return err
		}
		fmt.Printf("  %-40s %d\n", shift.Label, len(signups))
	}

	return nil
}
