package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zenloop/zenloop/internal/client/config"
	"github.com/zenloop/zenloop/internal/client/exercises"
	"github.com/zenloop/zenloop/internal/client/models"
	"github.com/zenloop/zenloop/internal/client/prefs"
)

// NewExerciseCommands returns the exercises command group
func NewExerciseCommands(getCfg func() *config.Config, getSvc func() *exercises.Service, getPrefs func() *prefs.Prefs) *cobra.Command {
	exercisesCmd := &cobra.Command{
		Use:   "exercises",
		Short: "Browse the exercise catalog",
	}

	exercisesCmd.AddCommand(newExercisesListCmd(getCfg, getSvc))
	exercisesCmd.AddCommand(newExercisesSearchCmd(getCfg, getSvc, getPrefs))
	exercisesCmd.AddCommand(newExercisesShowCmd(getCfg, getSvc))
	exercisesCmd.AddCommand(newExercisesMusclesCmd(getCfg))
	exercisesCmd.AddCommand(newExercisesRecentCmd(getCfg, getPrefs))

	return exercisesCmd
}

func newExercisesListCmd(getCfg func() *config.Config, getSvc func() *exercises.Service) *cobra.Command {
	var muscle, difficulty string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		Long:  "Fetch exercises from the catalog, optionally filtered by muscle group and difficulty. Falls back to the built-in list when the catalog is unreachable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, fromFallback := getSvc().Fetch(cmd.Context(), muscle, limit)
			list = exercises.FilterByDifficulty(list, difficulty)

			if fromFallback {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", color.YellowString("Catalog unreachable, showing built-in exercises"))
			}

			return printExerciseList(cmd, getCfg(), list)
		},
	}

	cmd.Flags().StringVar(&muscle, "muscle", "", "Filter by muscle group (see 'exercises muscles')")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Filter by difficulty (beginner, intermediate, expert)")
	cmd.Flags().IntVar(&limit, "limit", exercises.DefaultLimit, "Maximum number of exercises")

	return cmd
}

func newExercisesSearchCmd(getCfg func() *config.Config, getSvc func() *exercises.Service, getPrefs func() *prefs.Prefs) *cobra.Command {
	var muscle string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search exercises by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			ctx := cmd.Context()

			list, fromFallback := getSvc().Fetch(ctx, muscle, limit)
			list = exercises.Search(list, query)

			if err := getPrefs().RecordSearch(ctx, query); err != nil {
				// History is cosmetic; the search result still stands.
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record search: %v\n", err)
			}

			if fromFallback {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", color.YellowString("Catalog unreachable, searching built-in exercises"))
			}

			return printExerciseList(cmd, getCfg(), list)
		},
	}

	cmd.Flags().StringVar(&muscle, "muscle", "", "Restrict the search to a muscle group")
	cmd.Flags().IntVar(&limit, "limit", exercises.DefaultLimit, "Maximum number of exercises to search")

	return cmd
}

func newExercisesShowCmd(getCfg func() *config.Config, getSvc func() *exercises.Service) *cobra.Command {
	var muscle string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one exercise with its instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exercise, err := lookupExercise(cmd.Context(), getSvc(), muscle, args[0])
			if err != nil {
				return err
			}

			formatter, err := newFormatter(getCfg())
			if err != nil {
				return err
			}

			out, err := formatter.Format(exercise)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}

	cmd.Flags().StringVar(&muscle, "muscle", "", "Muscle group to narrow the lookup")

	return cmd
}

func newExercisesMusclesCmd(getCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "muscles",
		Short: "List the muscle groups the catalog understands",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := newFormatter(getCfg())
			if err != nil {
				return err
			}

			out, err := formatter.FormatList(models.MuscleGroups)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}
}

func newExercisesRecentCmd(getCfg func() *config.Config, getPrefs func() *prefs.Prefs) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show recent searches, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := newFormatter(getCfg())
			if err != nil {
				return err
			}

			searches := getPrefs().RecentSearches(cmd.Context())
			if len(searches) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No recent searches\n")
				return nil
			}

			out, err := formatter.FormatList(searches)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}
}

func printExerciseList(cmd *cobra.Command, cfg *config.Config, list []models.Exercise) error {
	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	out, err := formatter.FormatList(list)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	return nil
}
