package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rubiojr/msilog/pkg/core"
	"github.com/rubiojr/msilog/pkg/rules"
	"github.com/urfave/cli/v3"
)

// RunCommand creates the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a rule script of microservice calls",
		ArgsUsage: "<script>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Run again whenever the script changes",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "rule",
				Usage: "Rule name recorded in the execution context",
				Value: "msilog_run",
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "User recorded in the execution context",
				Value: "rods",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("exactly one script path required")
			}
			return runScript(ctx, c, c.Args().First())
		},
	}
}

func runScript(ctx context.Context, c *cli.Command, path string) error {
	cfg, closer, err := setup(c)
	if err != nil {
		return err
	}
	defer closer()

	registry := newRegistry()
	defer func() {
		if err := registry.Close(); err != nil {
			fmt.Printf("Warning: failed to close registry: %v\n", err)
		}
	}()

	runner := &rules.Runner{
		Registry: registry,
		RuleName: c.String("rule"),
		User:     c.String("user"),
		Allow:    cfg.PluginEnabled,
	}

	once := func() (int, error) {
		results, err := runner.RunFile(ctx, path)
		printResults(results)
		failed := 0
		for _, r := range results {
			if r.Failed() {
				failed++
			}
		}
		return failed, err
	}

	if !c.Bool("watch") {
		failed, err := once()
		if err != nil {
			return err
		}
		if failed > 0 {
			return cli.Exit(fmt.Sprintf("%d of the calls failed", failed), 1)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := once(); err != nil {
		logger.Errorf("%v", err)
	}
	fmt.Println(metaStyle.Render("Watching " + path + ". Press Ctrl+C to stop."))

	return rules.Watch(ctx, path, func() error {
		fmt.Println(headerStyle.Render("Script changed, running again"))
		_, err := once()
		return err
	})
}

func printResults(results []rules.Result) {
	for _, r := range results {
		status := fmt.Sprintf("%d (%s)", r.Status, core.StatusName(r.Status))
		if r.Err != nil {
			status = r.Err.Error()
		}
		fmt.Printf("%4d  %s  %s\n", r.Statement.Line, r.Statement, statusText(r.Failed(), status))
	}
}
