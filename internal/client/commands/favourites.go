package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenloop/zenloop/internal/client/config"
	"github.com/zenloop/zenloop/internal/client/exercises"
	"github.com/zenloop/zenloop/internal/client/favourites"
)

// NewFavouriteCommands returns the favourites command group
func NewFavouriteCommands(getCfg func() *config.Config, getSet func() *favourites.Set, getSvc func() *exercises.Service) *cobra.Command {
	favouritesCmd := &cobra.Command{
		Use:   "favourites",
		Short: "Manage favourite exercises",
	}

	favouritesCmd.AddCommand(newFavouritesListCmd(getCfg, getSet))
	favouritesCmd.AddCommand(newFavouritesAddCmd(getSet, getSvc))
	favouritesCmd.AddCommand(newFavouritesRemoveCmd(getSet))
	favouritesCmd.AddCommand(newFavouritesToggleCmd(getSet, getSvc))

	return favouritesCmd
}

func newFavouritesListCmd(getCfg func() *config.Config, getSet func() *favourites.Set) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favourite exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printExerciseList(cmd, getCfg(), getSet().List())
		},
	}
}

func newFavouritesAddCmd(getSet func() *favourites.Set, getSvc func() *exercises.Service) *cobra.Command {
	var muscle string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an exercise to favourites",
		Long:  "Add a catalog exercise to favourites by exact name. Adding an exercise that is already a favourite is a no-op.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			exercise, err := lookupExercise(ctx, getSvc(), muscle, args[0])
			if err != nil {
				return err
			}

			if err := getSet().Add(ctx, exercise); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %q to favourites\n", exercise.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&muscle, "muscle", "", "Muscle group to narrow the catalog lookup")

	return cmd
}

func newFavouritesRemoveCmd(getSet func() *favourites.Set) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an exercise from favourites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := getSet().Remove(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %q from favourites\n", args[0])

			return nil
		},
	}
}

func newFavouritesToggleCmd(getSet func() *favourites.Set, getSvc func() *exercises.Service) *cobra.Command {
	var muscle string

	cmd := &cobra.Command{
		Use:   "toggle <name>",
		Short: "Toggle an exercise in favourites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set := getSet()

			exercise, err := lookupExercise(ctx, getSvc(), muscle, args[0])
			if err != nil {
				return err
			}

			if err := set.Toggle(ctx, exercise); err != nil {
				return err
			}

			if set.IsFavourite(exercise.Name) {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %q to favourites\n", exercise.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %q from favourites\n", exercise.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&muscle, "muscle", "", "Muscle group to narrow the catalog lookup")

	return cmd
}
