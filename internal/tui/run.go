package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/snowball/internal/payoff"
)

// Run opens the schedule browser and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, plan *payoff.Plan, opts ...Option) error {
	if plan == nil {
		return errors.New("plan is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}

	p := tea.NewProgram(New(plan, opts...), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("schedule browser failed: %w", err)
	}
	return nil
}
