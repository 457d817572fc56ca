package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/rectplan/internal/cli/formatter"
	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/importer"
	"github.com/alexanderramin/rectplan/internal/planner"
	"github.com/alexanderramin/rectplan/internal/repository"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var profile, file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the process plan for a batch",
		Long: `Compute stage volumes, flows, timers and valve duty for a batch.

The starting config is, in order of preference: --profile, --file, the
active profile, or the built-in defaults. Config flags override it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profile != "" && file != "" {
				return fmt.Errorf("--profile and --file are mutually exclusive")
			}
			ctx := context.Background()

			cfg, source, err := baseConfig(ctx, app, profile, file)
			if err != nil {
				return err
			}
			if _, err := applyConfigFlags(cmd.Flags(), &cfg); err != nil {
				return err
			}

			plan, err := app.Plans.Calculate(ctx, cfg)
			if err != nil {
				return err
			}
			if asJSON {
				return writePlanJSON(cmd.OutOrStdout(), plan)
			}
			if source != "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Using "+source))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(plan))
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Saved profile (ID, ID prefix or name)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Profile file (.json or .toml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	addConfigFlags(cmd.Flags())

	return cmd
}

// baseConfig picks the starting config for a plan and describes where it
// came from.
func baseConfig(ctx context.Context, app *App, profile, file string) (domain.ProcessConfig, string, error) {
	switch {
	case profile != "":
		p, err := resolveProfile(ctx, app, profile)
		if err != nil {
			return domain.ProcessConfig{}, "", err
		}
		return p.Config, fmt.Sprintf("profile %s", p.Name), nil
	case file != "":
		f, err := importer.LoadProfileFile(file)
		if err != nil {
			return domain.ProcessConfig{}, "", err
		}
		return f.Config, fmt.Sprintf("file %s", file), nil
	}

	p, err := app.Profiles.Active(ctx)
	switch {
	case err == nil:
		return p.Config, fmt.Sprintf("active profile %s", p.Name), nil
	case errors.Is(err, repository.ErrNotFound):
		return domain.DefaultConfig(), "", nil
	default:
		return domain.ProcessConfig{}, "", err
	}
}

func writePlanJSON(w io.Writer, plan planner.ProcessPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
