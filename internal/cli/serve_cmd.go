package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/rectplan/internal/api"
	"github.com/alexanderramin/rectplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve profiles and the planner over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := app.settings()
			if bind == "" {
				bind = settings.API.Bind
			}
			readTimeout := time.Duration(settings.API.ReadTimeoutSeconds) * time.Second

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(app.Profiles, app.Plans)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s listening on http://%s\n", formatter.StyleOK.Render("●"), bind)
			return api.ListenAndServe(ctx, bind, srv.Handler(cmd.ErrOrStderr()), readTimeout)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default from config)")
	return cmd
}
