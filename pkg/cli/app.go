// Package cli implements the pmpo command line application.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/sunflower6069/pmpo/pkg/config"
	"github.com/sunflower6069/pmpo/pkg/logging"
)

const (
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func getConfig(c *urfave.Context) *config.Config {
	return c.App.Metadata[appConfigKey].(*config.Config)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 "pmpo",
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "Derives probabilistic multi-parameter optimization (pMPO) scoring models from labeled data",
		Flags: []urfave.Flag{
			debugFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			trainCmd,
		},
		Before: func(c *urfave.Context) error {
			if c.Bool(debugFlag.Name) {
				logging.SetDefaultCLILogger("debug")
			}

			cfg := config.Default()
			if dir, err := config.HomeDir(); err == nil {
				if fileCfg, err := config.ReadOrCreate(dir); err == nil {
					cfg = fileCfg
				} else {
					slog.Debug("ignoring unreadable config", "error", err)
				}
			}

			outputFormat = formatJSON
			if cfg.Format == formatYAML {
				outputFormat = formatYAML
			}
			f := c.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}

			c.App.Metadata[appConfigKey] = cfg
			return nil
		},
	}
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
