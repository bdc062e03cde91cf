package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "BouwConnect relay"
	s.app.Usage = "OAuth2 token relay of the BouwConnect integrations"
	s.app.Before = func(*cli.Context) error {
		return s.loadConfig()
	}
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serves the authorization popups, the token and tool link APIs and the catalog proxy.`,
		},
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "Run only the given migration version",
				},
			},
			Category:    "Database",
			Description: `Creates the tables and runs the data migrations.`,
		},
		{
			Action:      s.startSeed,
			Name:        "seed",
			Usage:       "Create the demo user",
			Category:    "Database",
			Description: `Creates the demo user from the DEMO_EMAIL, DEMO_PASSWORD and DEMO_NAME configs.`,
		},
	}
}
