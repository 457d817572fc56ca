package cli

import (
	"github.com/alexanderramin/rectplan/internal/config"
	"github.com/alexanderramin/rectplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Profiles service.ProfileService
	Plans    service.PlanService

	// Config is the loaded application config; ConfigPath is where it was
	// (or would be) read from.
	Config     *config.Config
	ConfigPath string

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) settings() config.Config {
	if a.Config == nil {
		return config.Default()
	}
	return *a.Config
}

// NewRootCmd creates the top-level "rectplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "rectplan",
		Short:         "Batch rectification planner",
		Long:          "Plans the heads, late heads, hearts and tails cuts of a batch run on a reflux column.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newCalcCmd(app),
		newProfileCmd(app),
		newServeCmd(app),
		newConfigCmd(app),
	)

	return root
}
