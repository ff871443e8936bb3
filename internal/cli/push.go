package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/upload"
)

func newPushCmd(a *app) *cobra.Command {
	var (
		serverURL string
		apiKey    string
		stateDir  string
		overwrite bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "push FILE.csv",
		Short: "Upload an Alpha Progression export to a running liftlog server",
		Long: `Upload an Alpha Progression CSV export to the import endpoint of a
running "liftlog serve".

Exports already delivered to the same server with identical content are
skipped unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading export: %w", err)
			}

			if serverURL == "" {
				serverURL = "http://" + a.cfg.Server.Addr()
			}
			serverURL = strings.TrimRight(serverURL, "/")
			if apiKey == "" {
				apiKey = a.cfg.Auth.APIKey
			}
			if stateDir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("resolving home directory: %w", err)
				}
				stateDir = filepath.Join(home, ".liftlog")
			}

			state, err := upload.OpenStateDB(stateDir)
			if err != nil {
				return err
			}
			defer state.Close()

			out := cmd.OutOrStdout()
			hash := upload.Hash(data)
			if !force {
				pushed, err := state.IsPushed(serverURL, hash)
				if err != nil {
					return fmt.Errorf("checking push state: %w", err)
				}
				if pushed {
					a.log.Info("export already pushed", "path", path, "server", serverURL)
					if a.jsonOutput() {
						return writeJSON(out, map[string]any{"path": path, "skipped": true})
					}
					fmt.Fprintf(out, "%s was already pushed to %s (use --force to resend).\n", path, serverURL)
					return nil
				}
			}

			result, err := upload.NewClient(serverURL, apiKey).UploadAlpha(cmd.Context(), data, overwrite)
			if err != nil {
				return fmt.Errorf("pushing %s: %w", path, err)
			}
			if err := state.MarkPushed(serverURL, hash, path, len(result.WorkoutsSaved)); err != nil {
				a.log.Warn("failed to record push state", "path", path, "error", err)
			}
			a.log.Info("export pushed", "path", path, "server", serverURL, "workouts", len(result.WorkoutsSaved))

			if a.jsonOutput() {
				return writeJSON(out, result)
			}
			fmt.Fprintf(out, "Pushed %s to %s: %d of %d sessions saved.\n",
				path, serverURL, len(result.WorkoutsSaved), result.SessionsReceived)
			if len(result.WorkoutsSkipped) > 0 {
				fmt.Fprintf(out, "Skipped (already stored, use --overwrite): %s\n", strings.Join(result.WorkoutsSkipped, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "server base URL (default: http://server.host:server.port)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for write endpoints (default: auth.api_key)")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory for the push state database (default: ~/.liftlog)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace workouts that already exist on the server")
	cmd.Flags().BoolVar(&force, "force", false, "resend an export that was already pushed")
	return cmd
}
