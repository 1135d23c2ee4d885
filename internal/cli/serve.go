package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the local web dashboard and JSON API.

Examples:
  codebuddy serve              # Start on CODEBUDDY_WEB_PORT (default 8080)
  codebuddy serve --port 3000  # Start on port 3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default: CODEBUDDY_WEB_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	port := app.Config.Web.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(port, app.Problems, app.Analytics, app.Logger)
	return server.Start(ctx)
}
