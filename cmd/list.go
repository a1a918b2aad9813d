package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/rubiojr/msilog/pkg/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ListCommand creates the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List available microservices and log categories",
		Action: func(ctx context.Context, c *cli.Command) error {
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

			fmt.Println(titleStyle.Render("Microservices"))
			for _, name := range registry.ListAvailable() {
				entry, err := registry.Load(name)
				if err != nil {
					fmt.Printf("  %s  %s\n", name, statusText(true, err.Error()))
					continue
				}
				state := "enabled"
				if !cfg.PluginEnabled(name) {
					state = "disabled"
				}
				fmt.Printf("  %s  %s  %s\n", name,
					metaStyle.Render(fmt.Sprintf("%d args + context", entry.NumArgs)),
					statusText(state != "enabled", state))
			}

			title := cases.Title(language.English)
			fmt.Println(headerStyle.Render("Log categories"))
			fmt.Printf("  %-14s %s\n", "Default", log.GetLevel())
			names := make([]string, 0, len(cfg.Log.Categories))
			for name := range cfg.Log.Categories {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-14s %s\n", title.String(name), cfg.Log.Categories[name])
			}
			return nil
		},
	}
}
