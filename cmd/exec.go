package cmd

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/rubiojr/msilog/pkg/core"
	"github.com/urfave/cli/v3"
)

// ExecCommand creates the exec command
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Call a microservice once",
		ArgsUsage: "<microservice> [args...]",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:  "null",
				Usage: "Pass argument N (1-based) as an absent parameter",
			},
			&cli.IntSliceFlag{
				Name:  "int",
				Usage: "Pass argument N (1-based) as an integer parameter",
			},
			&cli.StringFlag{
				Name:  "rule",
				Usage: "Rule name recorded in the execution context",
				Value: "msilog_exec",
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "User recorded in the execution context",
				Value: "rods",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args := c.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("microservice name required")
			}

			cfg, closer, err := setup(c)
			if err != nil {
				return err
			}
			defer closer()

			name := args[0]
			if !cfg.PluginEnabled(name) {
				return fmt.Errorf("microservice %s is disabled", name)
			}

			params, err := buildParams(args[1:], c.IntSlice("null"), c.IntSlice("int"))
			if err != nil {
				return err
			}

			rei := core.NewRuleExecInfo(c.String("rule"), c.String("user"))
			logger.Debugf("calling %s with %d parameters [%s]", name, len(params), rei.ID)

			status, err := newRegistry().Invoke(name, params, rei)
			if err != nil {
				return fmt.Errorf("calling %s: %w", name, err)
			}

			fmt.Printf("%s %s\n", name, statusText(status != core.StatusOK, fmt.Sprintf("%d (%s)", status, core.StatusName(status))))
			if status != core.StatusOK {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// buildParams turns command line arguments into parameter handles. nulls and
// ints hold 1-based argument positions.
func buildParams(args []string, nulls, ints []int) ([]*core.MsParam, error) {
	for _, n := range append(slices.Clone(nulls), ints...) {
		if n < 1 || n > len(args) {
			return nil, fmt.Errorf("argument position %d out of range (have %d arguments)", n, len(args))
		}
	}

	params := make([]*core.MsParam, len(args))
	for i, arg := range args {
		pos := i + 1
		label := fmt.Sprintf("arg%d", pos)
		switch {
		case slices.Contains(nulls, pos):
			params[i] = nil
		case slices.Contains(ints, pos):
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", pos, err)
			}
			params[i] = core.IntParam(label, n)
		default:
			params[i] = core.StrParam(label, arg)
		}
	}
	return params, nil
}
