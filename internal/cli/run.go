package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskmini/internal/donation"
	"github.com/sandeepkv93/taskmini/internal/tasklist"
	"github.com/sandeepkv93/taskmini/internal/update"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	ctx := contextOrBackground(cmd.Context())
	s, err := openSession(ctx, cfg, opts.ephemeral, true)
	if err != nil {
		return err
	}
	defer s.Close()

	store := tasklist.New(s.tasks, s.repo, tasklist.Options{})
	model := update.NewModel(update.Deps{
		Store:    store,
		Bridge:   s.bridge,
		Donation: donation.NewFlow(cfg.DonationAmounts, cfg.Currency),
		Logger:   s.logger,
		Config:   cfg,
		Now:      time.Now,
		Location: time.Local,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		s.logger.Error("tui exited", "err", err)
		return fmt.Errorf("taskmini failed: %w", err)
	}
	s.logger.Info("session ended", "tasks", store.Len())
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
