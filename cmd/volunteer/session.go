package main

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/urfave/cli/v2"
)

// sessionCommand mints the cookie the host site would issue, for local testing
// of the prefilled profile form.
var sessionCommand = &cli.Command{
	Name:  "session",
	Usage: "Encode a session cookie value for a contact",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:     "contact-id",
			Usage:    "Contact id to encode",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		hashKey, err := base64.StdEncoding.DecodeString(cfg.CookieHashKey)
		if err != nil {
			return fmt.Errorf("decode cookie hash key: %w", err)
		}
		blockKey, err := base64.StdEncoding.DecodeString(cfg.CookieBlockKey)
		if err != nil {
			return fmt.Errorf("decode cookie block key: %w", err)
		}
		if len(blockKey) == 0 {
			blockKey = nil
		}

		value, err := securecookie.New(hashKey, blockKey).Encode(cfg.SessionCookieName, c.Int64("contact-id"))
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}

		fmt.Printf("%s=%s\n", cfg.SessionCookieName, value)
		return nil
	},
}
