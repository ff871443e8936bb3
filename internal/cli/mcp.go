package cli

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	liftmcp "github.com/akyro/liftlog/internal/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve read-only workout tools over MCP on stdio",
		Long: `Serve the MCP tools list_workouts, get_workout, analyze_workout and
compare_workouts on stdin/stdout.

By default workouts are read from the configured store. With --remote the
tools read from a running "liftlog serve" instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ds liftmcp.DataSource
			if remote != "" {
				ds = liftmcp.NewHTTPClient(remote)
				a.log.Info("mcp using remote data source", "url", remote)
			} else {
				store, err := a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				ds = store
			}

			s := liftmcp.New(ds, Version, a.log)
			a.log.Info("mcp server starting on stdio", "version", Version)
			return mcpserver.NewStdioServer(s).Listen(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a liftlog HTTP server, e.g. http://127.0.0.1:8090")
	return cmd
}
