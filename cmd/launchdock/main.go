package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/bdobrica/launchdock/common/version"
	"github.com/bdobrica/launchdock/internal/launchdock/app"
	"github.com/bdobrica/launchdock/internal/launchdock/audit"
	"github.com/bdobrica/launchdock/internal/launchdock/config"
	"github.com/bdobrica/launchdock/internal/launchdock/observability"
)

func main() {
	cliApp := &cli.App{
		Name:    "launchdock",
		Usage:   "Launcher plugin that lists Docker containers and runs actions on them",
		Version: version.Info(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				EnvVars: []string{"LAUNCHDOCK_CONFIG"},
				Value:   defaultConfigPath(),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides the config file",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve launcher requests on stdin/stdout (default)",
				Action: serve,
			},
			{
				Name:  "audit",
				Usage: "Show the most recent container actions from the audit trail",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of entries to show",
						Value:   20,
					},
				},
				Action: showAudit,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir + "/launchdock/config.yaml"
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	w, closeLog, err := observability.OpenOutput(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()
	observability.Setup(cfg.Log.Level, cfg.Log.Format, w)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("initialize launchdock: %w", err)
	}
	defer a.Stop()

	return a.Run(ctx, os.Stdin)
}

func showAudit(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Audit.Path == "" {
		return fmt.Errorf("audit trail is disabled; set audit.path in the config")
	}

	st, err := audit.New(cfg.Audit.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.Recent(context.Background(), c.Int("limit"))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTION\tCONTAINER\tRESULT\tTRACE")
	for _, e := range entries {
		result := e.Result
		if e.Error != "" {
			result += ": " + e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%.12s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.EntityID, result, e.TraceID)
	}
	return tw.Flush()
}
