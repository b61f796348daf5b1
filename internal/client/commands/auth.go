package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zenloop/zenloop/internal/client/api"
	"github.com/zenloop/zenloop/internal/client/config"
	"github.com/zenloop/zenloop/internal/client/models"
	"github.com/zenloop/zenloop/internal/client/session"
	"github.com/zenloop/zenloop/internal/client/users"
)

// NewAuthCommands returns the auth command group
// getCfg, getMgr, getCreds and getAPI are functions that return the
// current config, session manager, credential store and auth client
func NewAuthCommands(getCfg func() *config.Config, getMgr func() *session.Manager, getCreds func() *users.Store, getAPI func() *api.AuthClient) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
		Long:  "Commands for account management (register, login, logout, status, passwd)",
	}

	authCmd.AddCommand(newRegisterCmd(getCfg, getCreds, getAPI))
	authCmd.AddCommand(newLoginCmd(getCfg, getMgr))
	authCmd.AddCommand(newLogoutCmd(getMgr))
	authCmd.AddCommand(newStatusCmd(getCfg, getMgr))
	authCmd.AddCommand(newPasswdCmd(getMgr))

	return authCmd
}

// newRegisterCmd creates the register command
func newRegisterCmd(getCfg func() *config.Config, getCreds func() *users.Store, getAPI func() *api.AuthClient) *cobra.Command {
	var username, email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new local account",
		Long:  "Create a new account in the local credential store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Username").
							Value(&username).
							Validate(func(s string) error {
								if len(s) == 0 {
									return fmt.Errorf("username is required")
								}
								return nil
							}),

						huh.NewInput().
							Title("Email").
							Value(&email).
							Validate(func(s string) error {
								if len(s) == 0 {
									return fmt.Errorf("email is required")
								}
								return nil
							}),

						huh.NewInput().
							Title("Password").
							Value(&password).
							EchoMode(huh.EchoModePassword).
							Validate(func(s string) error {
								if len(s) == 0 {
									return fmt.Errorf("password is required")
								}
								return nil
							}),

						huh.NewInput().
							Title("First name").
							Value(&firstName),

						huh.NewInput().
							Title("Last name").
							Value(&lastName),
					),
				)

				if err := form.Run(); err != nil {
					return fmt.Errorf("registration cancelled: %w", err)
				}
			}

			logrus.Debugf("Registering user: %s", username)

			ctx := cmd.Context()
			user, err := getCreds().Register(ctx, models.User{
				Username:  username,
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				return err
			}

			// Best-effort mirror to the remote directory. Registration has
			// already succeeded locally; the remote result is discarded.
			if err := getAPI().AddUser(ctx, user.WithoutPassword()); err != nil {
				logrus.Debugf("Remote add-user failed (ignored): %v", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Registration successful!\n")
			fmt.Fprintf(cmd.OutOrStdout(), "  User ID: %d\n", user.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Run 'zenloop auth login' to sign in.\n")

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "Email for the new account")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")

	return cmd
}

// newLoginCmd creates the login command
func newLoginCmd(getCfg func() *config.Config, getMgr func() *session.Manager) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to your account",
		Long:  "Authenticate against the remote endpoint, falling back to locally registered accounts when it is unreachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Username").
							Value(&username).
							Validate(func(s string) error {
								if len(s) == 0 {
									return fmt.Errorf("username is required")
								}
								return nil
							}),

						huh.NewInput().
							Title("Password").
							Value(&password).
							EchoMode(huh.EchoModePassword).
							Validate(func(s string) error {
								if len(s) == 0 {
									return fmt.Errorf("password is required")
								}
								return nil
							}),
					),
				)

				if err := form.Run(); err != nil {
					return fmt.Errorf("login cancelled: %w", err)
				}
			}

			mgr := getMgr()
			user, err := mgr.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", user.Username)
			if mgr.IsLocal() {
				fmt.Fprintf(cmd.OutOrStdout(), "  (offline: resolved against the local credential store)\n")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

// newLogoutCmd creates the logout command
func newLogoutCmd(getMgr func() *session.Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			getMgr().Logout(cmd.Context())

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged out\n")

			return nil
		},
	}
}

// newStatusCmd creates the status command
func newStatusCmd(getCfg func() *config.Config, getMgr func() *session.Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := getMgr()

			user, ok := mgr.Current()
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Not logged in\n")
				return nil
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

			if mgr.IsLocal() {
				fmt.Fprintf(cmd.OutOrStdout(), "  Session: local (offline)\n")
			} else if exp, ok := mgr.TokenExpiry(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "  Session: remote, token expires %s\n", exp.Format("2006-01-02 15:04:05"))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "  Session: remote\n")
			}

			return nil
		},
	}
}

// newPasswdCmd creates the password change command
func newPasswdCmd(getMgr func() *session.Manager) *cobra.Command {
	var current, next, confirm string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of a locally registered account",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := getMgr()
			if _, err := requireAuth(mgr); err != nil {
				return err
			}

			if next == "" {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Current password").
							Value(&current).
							EchoMode(huh.EchoModePassword),

						huh.NewInput().
							Title("New password").
							Description("At least 6 characters, one uppercase letter and one digit").
							Value(&next).
							EchoMode(huh.EchoModePassword),

						huh.NewInput().
							Title("Confirm new password").
							Value(&confirm).
							EchoMode(huh.EchoModePassword),
					),
				)

				if err := form.Run(); err != nil {
					return fmt.Errorf("password change cancelled: %w", err)
				}
			}

			if err := mgr.ChangePassword(cmd.Context(), current, next, confirm); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Password changed\n")

			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Confirmation of the new password")

	return cmd
}
