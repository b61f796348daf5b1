package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zenloop/zenloop/internal/client/api"
	"github.com/zenloop/zenloop/internal/client/commands"
	"github.com/zenloop/zenloop/internal/client/config"
	"github.com/zenloop/zenloop/internal/client/exercises"
	"github.com/zenloop/zenloop/internal/client/favourites"
	"github.com/zenloop/zenloop/internal/client/prefs"
	"github.com/zenloop/zenloop/internal/client/session"
	"github.com/zenloop/zenloop/internal/client/storage"
	"github.com/zenloop/zenloop/internal/client/users"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"

	cfg        *config.Config
	store      *storage.SQLiteStore
	creds      *users.Store
	mgr        *session.Manager
	authAPI    *api.AuthClient
	catalogSvc *exercises.Service
	favSet     *favourites.Set
	userPrefs  *prefs.Prefs

	configPath string
	verbose    bool
	format     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zenloop",
	Short: "ZenLoop - a fitness companion for the terminal",
	Long: `ZenLoop keeps your account, favourite exercises and preferences
on this device. It talks to the remote catalog and auth endpoints when
they are reachable and falls back to local data when they are not.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = verbose
		}
		if cmd.Flags().Changed("format") {
			cfg.Format = format
		}

		if err := cfg.ValidateFormat(); err != nil {
			return err
		}

		if cfg.Verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}

		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			DisableColors:    false,
		})

		if err := cfg.EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}

		store, err = storage.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open local store: %w", err)
		}

		authAPI = api.NewAuthClient(cfg.AuthAPI, cfg.UsersAPI, cfg.RequestTimeout)
		creds = users.NewStore(store)
		mgr = session.NewManager(store, creds, authAPI)
		catalogSvc = exercises.NewService(api.NewCatalogClient(cfg.ExercisesAPI, cfg.ExercisesAPIKey, cfg.RequestTimeout))
		favSet = favourites.NewSet(store)
		userPrefs = prefs.New(store)

		ctx := cmd.Context()
		mgr.Load(ctx)
		favSet.Load(ctx)

		logrus.Debugf("Configuration loaded: auth=%s, catalog=%s, format=%s", cfg.AuthAPI, cfg.ExercisesAPI, cfg.Format)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			if err := store.Close(); err != nil {
				logrus.Debugf("Failed to close local store: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: $HOME/.zenloop/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "Output format (text, json, yaml)")

	rootCmd.PersistentFlags().Lookup("format").Usage = "Output format [env: ZENLOOP_FORMAT]"

	addCommands()
}

// addCommands adds all subcommands to the root command
func addCommands() {
	// Use closures to provide lazy access to the stack built in PersistentPreRunE
	getCfg := func() *config.Config { return cfg }
	getMgr := func() *session.Manager { return mgr }
	getCreds := func() *users.Store { return creds }
	getAPI := func() *api.AuthClient { return authAPI }
	getSvc := func() *exercises.Service { return catalogSvc }
	getSet := func() *favourites.Set { return favSet }
	getPrefs := func() *prefs.Prefs { return userPrefs }

	rootCmd.AddCommand(commands.NewAuthCommands(getCfg, getMgr, getCreds, getAPI))
	rootCmd.AddCommand(commands.NewProfileCommands(getCfg, getMgr))
	rootCmd.AddCommand(commands.NewExerciseCommands(getCfg, getSvc, getPrefs))
	rootCmd.AddCommand(commands.NewFavouriteCommands(getCfg, getSet, getSvc))
	rootCmd.AddCommand(commands.NewThemeCommands(getPrefs))
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, buildDate))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
