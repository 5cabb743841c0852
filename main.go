package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"runtui/internal/app"
	"runtui/internal/client"
	"runtui/internal/config"
	"runtui/internal/mock"
	"runtui/sdk/runfeed"
)

func main() {
	cliApp := &cli.App{
		Name:  "runtui",
		Usage: "Terminal console for streaming agent runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Usage:   "Backend base URL",
			},
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Usage:   "Stream transport: sse or ws",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   config.DefaultPath(),
			},
			&cli.BoolFlag{
				Name:  "show-all",
				Usage: "Start with the full event list expanded",
			},
			&cli.BoolFlag{
				Name:  "demo",
				Usage: "Run the scripted demo backend instead of the TUI",
			},
			&cli.IntFlag{
				Name:  "demo-port",
				Usage: "Port for the demo backend",
				Value: 8000,
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// run resolves configuration (flag over env over file over defaults) and
// starts either the demo backend or the TUI.
func run(c *cli.Context) error {
	if c.Bool("demo") {
		runfeed.SetLogger(runfeed.NewLogger(runfeed.LevelInfo, os.Stderr))
		return mock.NewServer(c.Int("demo-port")).Start()
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	cfg = cfg.ApplyEnv()
	if v := c.String("backend"); v != "" {
		cfg.Backend = v
	}
	if v := c.String("transport"); v != "" {
		cfg.Transport = v
	}
	if c.Bool("show-all") {
		cfg.ShowAllEvents = true
	}
	switch cfg.Transport {
	case "sse", "ws":
	default:
		return fmt.Errorf("unknown transport %q (want sse or ws)", cfg.Transport)
	}

	setupLogging(cfg)

	cl := client.New(cfg.Backend, client.Transport(cfg.Transport))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cl.HealthCheck(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: backend %s unreachable: %v\n", cfg.Backend, err)
	}

	model := app.New(cfg, cl)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	_, err = p.Run()
	return err
}

// setupLogging routes logs to a file: the TUI owns the terminal, so stderr
// would tear the display.
func setupLogging(cfg config.Config) {
	level := runfeed.LevelOff
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = runfeed.LevelDebug
	case "INFO":
		level = runfeed.LevelInfo
	case "WARN", "WARNING":
		level = runfeed.LevelWarn
	case "ERROR":
		level = runfeed.LevelError
	}
	if level == runfeed.LevelOff {
		return
	}
	f, err := os.OpenFile("runtui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	runfeed.SetLogger(runfeed.NewLogger(level, f))
}
