package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/flowboard/internal/config"
	"github.com/thenoetrevino/flowboard/internal/store"
)

// Run starts the board and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, st *store.Store, cfg *config.Config) error {
	m := New(ctx, st, cfg)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}
