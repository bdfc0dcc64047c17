package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/kr/pretty"

	"github.com/dminor/hobbes/pkg/hobbes"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	welcomeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runREPL(cfg Config) error {
	replCfg, err := hobbes.LoadReplConfig()
	if err != nil {
		return fmt.Errorf("loading REPL config: %w", err)
	}

	style := func(s lipgloss.Style, text string) string {
		if !replCfg.Color {
			return text
		}
		return s.Render(text)
	}

	fmt.Println(style(welcomeStyle, "Hobbes REPL"))
	fmt.Println(style(dimStyle, "Type an expression, or press Ctrl-D to exit."))

	// Defines persist across lines through the shared environments; each
	// line still gets its own substitution arena.
	tenv := hobbes.NewTypeEnv()
	venv := hobbes.NewEnv()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(style(promptStyle, replCfg.Prompt))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		node, err := hobbes.Parse(line)
		if err != nil {
			fmt.Println(style(errorStyle, err.Error()))
			continue
		}
		if cfg.Debug {
			slog.Debug("parsed line", "ast", pretty.Sprint(node))
		}

		val, typ, err := hobbes.RunNode(node, tenv, venv)
		if err != nil {
			fmt.Println(style(errorStyle, err.Error()))
			continue
		}
		fmt.Printf("%s %s\n", style(resultStyle, val.String()), style(dimStyle, ": "+typ.String()))
	}
}
