package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rectplan/internal/cli/formatter"
	"github.com/alexanderramin/rectplan/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newCalcCmd(app *App) *cobra.Command {
	var profile, save string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Interactive calculator that replans on every keystroke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("calc needs an interactive terminal; use `rectplan plan` instead")
			}
			ctx := context.Background()

			cfg, _, err := baseConfig(ctx, app, profile, "")
			if err != nil {
				return err
			}

			model := newCalcModel(ctx, app.Plans, cfg)
			final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return fmt.Errorf("running calculator: %w", err)
			}
			m, ok := final.(*calcModel)
			if !ok || !m.confirmed || m.plan == nil {
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(*m.plan))
			if save == "" {
				return nil
			}
			p := &domain.Profile{Name: save, Config: m.Config()}
			if err := app.Profiles.Create(ctx, p); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Saved as %s %s", formatter.Bold(p.Name), formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Start from a saved profile (default: active profile)")
	cmd.Flags().StringVar(&save, "save", "", "Save the final inputs as a new profile with this name")
	return cmd
}
