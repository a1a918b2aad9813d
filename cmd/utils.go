package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rubiojr/msilog/pkg/config"
	"github.com/rubiojr/msilog/pkg/core"
	"github.com/rubiojr/msilog/pkg/log"
	"github.com/urfave/cli/v3"
)

var logger = log.ForCategory("msilog")

// setup loads the configuration named by the global --config flag and
// applies it to the host logger. The returned function releases the log
// output and must be called when the command is done.
func setup(c *cli.Command) (*config.Config, func(), error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	closer, err := applyLogConfig(cfg.Log, c.Bool("debug"))
	if err != nil {
		return nil, nil, err
	}
	return cfg, closer, nil
}

// applyLogConfig pushes thresholds, format and output into pkg/log.
func applyLogConfig(lc config.LogConfig, debug bool) (func(), error) {
	format, err := log.ParseFormat(lc.Format)
	if err != nil {
		return nil, err
	}

	out, closer, err := openOutput(lc.Output)
	if err != nil {
		return nil, err
	}

	level := lc.Level
	if debug && level > log.LevelDebug {
		level = log.LevelDebug
	}

	log.SetLevel(level)
	log.ResetCategoryLevels()
	for name, l := range lc.Categories {
		log.SetCategoryLevel(name, l)
	}
	if err := log.SetFormat(format); err != nil {
		closer()
		return nil, err
	}
	log.SetOutput(out)

	return func() {
		_ = log.Sync()
		closer()
	}, nil
}

func openOutput(output string) (io.Writer, func(), error) {
	switch output {
	case "", "stderr":
		return os.Stderr, func() {}, nil
	case "stdout":
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output %s: %w", output, err)
	}
	return f, func() {
		log.SetOutput(os.Stderr)
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log output: %v\n", err)
		}
	}, nil
}

// newRegistry returns the microservice table with every linked-in plugin.
func newRegistry() *core.Registry {
	return core.GetGlobalRegistry()
}
