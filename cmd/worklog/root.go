package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nhle/worklog/internal/config"
	"github.com/nhle/worklog/internal/model"
	"github.com/nhle/worklog/internal/store"
)

var (
	version = "dev"

	flagConfigPath string
	flagDBPath     string
	flagUsername   string
)

// app holds the state shared by all subcommands, populated by the root
// command's PersistentPreRunE.
var app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.SQLiteStore
	user  *model.User
}

var rootCmd = &cobra.Command{
	Use:     "worklog",
	Short:   "Personal work-log and todo tracker",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfigPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if flagDBPath != "" {
			cfg.Database.Path = flagDBPath
		}
		app.cfg = cfg

		level, err := zerolog.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}
		app.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()

		st, err := store.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database %s: %w", cfg.Database.Path, err)
		}
		app.store = st

		user, err := resolveUser(cmd, flagUsername)
		if err != nil {
			return err
		}
		app.user = user
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app.store != nil {
			return app.store.Close()
		}
		return nil
	},
}

// resolveUser looks up the acting user by username, creating the account
// on first use.
func resolveUser(cmd *cobra.Command, username string) (*model.User, error) {
	ctx := cmd.Context()

	user, err := app.store.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("resolving user %q: %w", username, err)
	}

	id, err := app.store.CreateUser(ctx, model.User{
		Username:    username,
		DisplayName: username,
		IsActive:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating user %q: %w", username, err)
	}
	app.log.Info().Str("username", username).Int64("user_id", id).Msg("created user")
	return app.store.GetUserByID(ctx, id)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database file path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagUsername, "user", "u", defaultUsername(), "Acting username")
	rootCmd.SilenceUsage = true
}

func defaultUsername() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}

// parseDate parses a YYYY-MM-DD flag value, returning nil for an empty one.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}
