package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
)

func newCreateCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty workout",
		Long: `Create an empty workout with the given name.

An existing workout with the same name is left untouched unless --force
is given, in which case it is replaced by the empty workout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := models.ValidateWorkoutName(name); err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if !force {
				_, err := store.Load(cmd.Context(), name)
				switch {
				case err == nil:
					return fmt.Errorf("workout %q already exists (use --force to replace it)", name)
				case !errors.Is(err, storage.ErrNotFound):
					return err
				}
			}

			w := models.NewWorkout(name)
			if err := store.Save(cmd.Context(), w); err != nil {
				return err
			}
			a.log.Info("workout created", "name", name)
			return a.printWorkout(cmd.OutOrStdout(), w)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing workout with the same name")
	return cmd
}
