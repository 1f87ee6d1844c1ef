package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"hlsltools/internal/driver"
	"hlsltools/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides whether to show the progress view. In auto mode it
// is only worth it for several files on an interactive terminal.
func shouldUseTUI(mode uiMode, files int) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return files > 1 && isTerminal(os.Stderr)
	}
}

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI runs CheckFiles while a Bubble Tea program renders its
// events on stderr, keeping stdout for the diagnostics.
func runCheckWithUI(ctx context.Context, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Events = events
		res, err := driver.CheckFiles(ctx, files, opts)
		close(events)
		outcomeCh <- checkOutcome{result: res, err: err}
	}()

	model := ui.NewProgressModel("checking", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the view may quit early (ctrl+c); keep the checker unblocked
	go func() {
		for range events { //nolint:revive // drain
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return nil, outcome.err
	}
	if uiErr != nil {
		return outcome.result, fmt.Errorf("progress view: %w", uiErr)
	}
	return outcome.result, nil
}
