package main

import (
	"context"
	"fmt"

	"github.com/arf3lix/songorder/internal/order"
	"github.com/arf3lix/songorder/internal/repositories"
	"github.com/arf3lix/songorder/internal/session"
	"github.com/arf3lix/songorder/internal/shared"
	"github.com/arf3lix/songorder/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive order builder.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	stored := r.stored
	if stored == nil {
		var err error
		if stored, err = loadSession(); err != nil {
			return fmt.Errorf("%w: run 'songorder auth login' first", shared.ErrNotAuthenticated)
		}
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/songorder-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	r.sessions = session.NewManager(r.catalog, r.engine, nil, fileLogger)

	// receipt history is best-effort: the order flow works without the database
	var recorder order.Recorder
	if db, err := shared.NewDatabase(r.config.Database.Path); err != nil {
		fileLogger.Warn("receipt database unavailable, confirmations will not be recorded", "err", err)
	} else {
		defer db.Close()
		recorder = repositories.NewReceiptRepository(db)
	}

	assembler := order.NewAssembler(r.engine, r.orders, recorder, r.config.Order.ReservedPrefix, fileLogger)

	model := ui.NewModel(ctx, r.catalog, r.sessions, assembler, r.engine, stored.Phone, fileLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
