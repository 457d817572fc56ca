package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/rectplan/internal/cli/formatter"
	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/importer"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles"},
		Short:   "Manage saved batch profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(app),
		newProfileShowCmd(app),
		newProfileCreateCmd(app),
		newProfileUpdateCmd(app),
		newProfileCopyCmd(app),
		newProfileRenameCmd(app),
		newProfileDeleteCmd(app),
		newProfileActivateCmd(app),
		newProfileActiveCmd(app),
		newProfileApplyCmd(app),
		newProfileImportCmd(app),
		newProfileExportCmd(app),
		newProfileHistoryCmd(app),
	)

	return cmd
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", formatter.StyleOK.Render("✔"), fmt.Sprintf(format, args...))
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Profiles.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfileList(profiles))
			return nil
		},
	}
}

func newProfileShowCmd(app *App) *cobra.Command {
	var withPlan bool

	cmd := &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a profile (default: the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProfile(ctx, app, profileRef(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			if !withPlan {
				return nil
			}
			_, plan, err := app.Plans.PlanProfile(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(plan))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withPlan, "plan", false, "Also show the computed plan")
	return cmd
}

func newProfileCreateCmd(app *App) *cobra.Command {
	var name, notes, file string
	var wizard, activate bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a profile from defaults, a file, or the wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var p *domain.Profile
			switch {
			case wizard:
				if !app.interactive() {
					return fmt.Errorf("--wizard needs an interactive terminal")
				}
				fields := newProfileWizardFields(name)
				if err := runProfileWizard(fields); err != nil {
					return err
				}
				built, err := fields.toProfile()
				if err != nil {
					return err
				}
				p = built
			case file != "":
				f, err := importer.LoadProfileFile(file)
				if err != nil {
					return err
				}
				p = &domain.Profile{Name: f.Name, Notes: f.Notes, Config: f.Config}
			default:
				p = &domain.Profile{Config: domain.DefaultConfig()}
			}

			if name != "" {
				p.Name = name
			}
			if notes != "" {
				p.Notes = notes
			}
			if p.Name == "" {
				return fmt.Errorf("--name is required")
			}
			if _, err := applyConfigFlags(cmd.Flags(), &p.Config); err != nil {
				return err
			}

			if err := app.Profiles.Create(ctx, p); err != nil {
				return err
			}
			if activate {
				if err := app.Profiles.Activate(ctx, p.ID); err != nil {
					return err
				}
			}
			success(cmd.OutOrStdout(), "Created profile %s %s", formatter.Bold(p.Name), formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Profile name")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Start from a profile file (.json or .toml)")
	cmd.Flags().BoolVar(&wizard, "wizard", false, "Fill in the profile interactively")
	cmd.Flags().BoolVar(&activate, "activate", false, "Make the new profile active")
	addConfigFlags(cmd.Flags())

	return cmd
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [ID]",
		Short: "Change process inputs of a profile",
		Long:  "Change process inputs of a profile (default: the active one). Only the flags given are changed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProfile(ctx, app, profileRef(args))
			if err != nil {
				return err
			}
			cfg := p.Config
			changed, err := applyConfigFlags(cmd.Flags(), &cfg)
			if err != nil {
				return err
			}
			if !changed {
				return fmt.Errorf("nothing to update; pass at least one config flag")
			}
			if _, err := app.Profiles.UpdateConfig(ctx, p.ID, cfg); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Updated %s", formatter.Bold(p.Name))
			return nil
		},
	}

	addConfigFlags(cmd.Flags())
	return cmd
}

func newProfileCopyCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "copy ID",
		Short: "Duplicate a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			src, err := resolveProfile(ctx, app, args[0])
			if err != nil {
				return err
			}
			cp, err := app.Profiles.Copy(ctx, src.ID, name)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Copied %s to %s %s", src.Name, formatter.Bold(cp.Name), formatter.TruncID(cp.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the copy (default: \"<name> (copy)\")")
	return cmd
}

func newProfileRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename ID",
		Short: "Rename a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProfile(ctx, app, args[0])
			if err != nil {
				return err
			}
			old := p.Name
			p, err = app.Profiles.Rename(ctx, p.ID, name)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Renamed %s %s %s", old, formatter.Dim("→"), formatter.Bold(p.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProfileDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a profile and its plan history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProfile(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Profiles.Delete(ctx, p.ID); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Deleted %s", p.Name)
			return nil
		},
	}
}

func newProfileActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate ID",
		Short: "Make a profile the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProfile(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Profiles.Activate(ctx, p.ID); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Active profile: %s", formatter.Bold(p.Name))
			return nil
		},
	}
}

func newProfileActiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProfile(context.Background(), app, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

func newProfileApplyCmd(app *App) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "apply [ID]",
		Short: "Compute the plan and store its duty cycles and timers in the profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProfile(ctx, app, profileRef(args))
			if err != nil {
				return err
			}
			res, err := app.Plans.Apply(ctx, p.ID)
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(res.Plan))
			}
			success(cmd.OutOrStdout(), "Applied plan to %s (run %s)", formatter.Bold(res.Profile.Name), formatter.TruncID(res.Run.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the plan")
	return cmd
}

func newProfileImportCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import PATH",
		Short: "Import a profile from a JSON or TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			f, err := importer.LoadProfileFile(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				f.Name = name
			}
			p, err := app.Profiles.Import(ctx, f)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Imported %s %s", formatter.Bold(p.Name), formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Override the profile name from the file")
	return cmd
}

func newProfileExportCmd(app *App) *cobra.Command {
	var formatStr, out string

	cmd := &cobra.Command{
		Use:   "export [ID]",
		Short: "Export a profile as JSON or TOML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProfile(ctx, app, profileRef(args))
			if err != nil {
				return err
			}

			format := importer.FormatJSON
			switch {
			case formatStr != "":
				if format, err = importer.ParseFormat(formatStr); err != nil {
					return err
				}
			case out != "":
				format = importer.FormatFromPath(out)
			}

			f, err := app.Profiles.Export(ctx, p.ID)
			if err != nil {
				return err
			}
			if out == "" {
				return importer.Encode(cmd.OutOrStdout(), f, format)
			}

			fh, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := importer.Encode(fh, f, format); err != nil {
				fh.Close()
				return err
			}
			if err := fh.Close(); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			success(cmd.OutOrStdout(), "Exported %s to %s", formatter.Bold(p.Name), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatStr, "format", "", "json or toml (default: from --out extension, else json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newProfileHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [ID]",
		Short: "List applied plans of a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProfile(ctx, app, profileRef(args))
			if err != nil {
				return err
			}
			runs, err := app.Plans.History(ctx, p.ID, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(p.Name, runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum runs to show (-1 for all)")
	return cmd
}
