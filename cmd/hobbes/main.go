package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/dminor/hobbes/pkg/hobbes"
)

// Config holds the application configuration
type Config struct {
	Debug bool
	File  string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "hobbes [flags] [file]",
		Short: "Hobbes language interpreter",
		Long: `Hobbes is a small functional language with full type inference.
Programs are type-checked before they run; no annotations are needed.`,
		Example: `  # Run a Hobbes script
  hobbes script.hb

  # Start interactive REPL
  hobbes

  # Run with debug logging enabled
  hobbes --debug script.hb`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)

			if len(args) == 1 {
				cfg.File = args[0]
				return run(cfg)
			}
			return runREPL(cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func run(cfg Config) error {
	contents, err := os.ReadFile(cfg.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.File, err)
	}

	node, err := hobbes.Parse(string(contents))
	if err != nil {
		return err
	}
	if cfg.Debug {
		slog.Debug("parsed program", "ast", pretty.Sprint(node))
	}

	val, typ, err := hobbes.RunNode(node, hobbes.NewTypeEnv(), hobbes.NewEnv())
	if err != nil {
		return err
	}

	fmt.Printf("%s : %s\n", val, typ)
	return nil
}
