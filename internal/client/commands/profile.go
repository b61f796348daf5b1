package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenloop/zenloop/internal/client/config"
	"github.com/zenloop/zenloop/internal/client/session"
)

// NewProfileCommands returns the profile command group
func NewProfileCommands(getCfg func() *config.Config, getMgr func() *session.Manager) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile commands",
		Long:  "Show and update the logged-in user's profile",
	}

	profileCmd.AddCommand(newProfileShowCmd(getCfg, getMgr))
	profileCmd.AddCommand(newProfileUpdateCmd(getCfg, getMgr))

	return profileCmd
}

func newProfileShowCmd(getCfg func() *config.Config, getMgr func() *session.Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireAuth(getMgr())
			if err != nil {
				return err
			}

			formatter, err := newFormatter(getCfg())
			if err != nil {
				return err
			}

			out, err := formatter.Format(user)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}
}

func newProfileUpdateCmd(getCfg func() *config.Config, getMgr func() *session.Manager) *cobra.Command {
	var username, email, firstName, lastName, image string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Long:  "Update profile fields; only the flags you pass are changed. Edits to a locally registered account also update its credential record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := getMgr()
			if _, err := requireAuth(mgr); err != nil {
				return err
			}

			var update session.UserUpdate
			if cmd.Flags().Changed("username") {
				update.Username = &username
			}
			if cmd.Flags().Changed("email") {
				update.Email = &email
			}
			if cmd.Flags().Changed("first-name") {
				update.FirstName = &firstName
			}
			if cmd.Flags().Changed("last-name") {
				update.LastName = &lastName
			}
			if cmd.Flags().Changed("image") {
				update.Image = &image
			}

			user, err := mgr.UpdateUser(cmd.Context(), update)
			if err != nil {
				return err
			}

			formatter, err := newFormatter(getCfg())
			if err != nil {
				return err
			}

			out, err := formatter.Format(user)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Profile updated\n")
			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "New first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "New last name")
	cmd.Flags().StringVar(&image, "image", "", "New avatar image URI")

	return cmd
}
