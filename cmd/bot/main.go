package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

var envFile string

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "env-file, e",
		Usage:       "path of the .env file to load before reading the environment",
		Value:       ".env",
		Destination: &envFile,
	},
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ctabot:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ctabot"
	app.Usage = "Discord bot for scheduled CTA pings"
	app.UsageText = "ctabot [--env-file FILE] <command>"
	app.Flags = globalFlags
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "connect to Discord and serve commands and alerts (default)",
			Action: runBot,
		},
		{
			Name:    "alerts",
			Aliases: []string{"ls"},
			Usage:   "list the pending alerts of the configured store",
			Action:  listAlerts,
		},
	}
	app.Action = runBot
	return app
}
