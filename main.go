package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rubiojr/msilog/cmd"
	"github.com/rubiojr/msilog/pkg/config"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "msilog",
		Usage: "Host harness for the msi_log microservice",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.ExecCommand(),
			cmd.RunCommand(),
			cmd.ListCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get default config path: %v\n", err)
		os.Exit(1)
	}
	return path
}
