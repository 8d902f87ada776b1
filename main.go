package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nutriplate/xls2csv/internal/batch"
	"github.com/nutriplate/xls2csv/internal/config"
	"github.com/nutriplate/xls2csv/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errIncomplete makes the process exit 1 when a pair was missing or failed.
var errIncomplete = errors.New("not every file was converted")

func main() {
	err := Main(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errIncomplete):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func Main(args []string, stdout, stderr io.Writer) error {
	cfg := config.New()
	fs := config.NewFlagSet("xls2csv", cfg)
	fs.SetOutput(stderr)

	app := ffcli.Command{
		Name:       "xls2csv",
		ShortUsage: "xls2csv [flags]",
		ShortHelp:  "Convert legacy spreadsheets to UTF-8 CSV, dropping unnamed columns.",
		FlagSet:    fs,
		Options:    config.FFOptions(),
		Exec: func(ctx context.Context, args []string) error {
			if cfg.Version {
				fmt.Fprintf(stdout, "xls2csv %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
				return nil
			}
			if len(args) != 0 {
				return fmt.Errorf("unexpected arguments %q; use -pair input=output", args)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

			var summary batch.Summary
			if cfg.TUI {
				p := tea.NewProgram(ui.NewModel(cfg.Pairs.Pairs(), cfg.Options), tea.WithContext(ctx), tea.WithOutput(stdout))
				m, err := p.Run()
				if err != nil {
					return err
				}
				summary = m.(ui.Model).Summary()
			} else {
				summary = batch.Run(cfg.Pairs.Pairs(), cfg.Options, ui.NewConsole(stdout))
			}
			slog.Debug("run finished", "converted", summary.Converted, "total", summary.Total)

			if summary.Failed() {
				return errIncomplete
			}
			return nil
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.ParseAndRun(ctx, args)
}
