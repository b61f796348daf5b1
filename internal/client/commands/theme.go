package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenloop/zenloop/internal/client/prefs"
)

// NewThemeCommands returns the theme command group
func NewThemeCommands(getPrefs func() *prefs.Prefs) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the colour theme",
	}

	themeCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", getPrefs().Theme(cmd.Context()))
			return nil
		},
	})

	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Toggle between dark and light",
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := getPrefs().ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", next)

			return nil
		},
	})

	return themeCmd
}
