package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathracers/internal/app"
	"github.com/abhisek/mathracers/internal/config"
	"github.com/abhisek/mathracers/internal/logging"
	"github.com/abhisek/mathracers/internal/session"
	"github.com/abhisek/mathracers/internal/store"
)

// runApp opens the store, builds the race controller, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	log, closer := openLogger(cmd)
	defer closer.Close()

	st, repo, err := openRepo(cmd, log)
	if err != nil {
		return err
	}
	defer st.Close()

	tuning := loadTuning(cmd)
	ctl := session.NewController(ctx, repo, tuning.Session(), session.WithLogger(log))

	log.WithField("coins", ctl.Profile().Coins).Info("starting mathracers")
	return app.Run(ctx, ctl)
}

// openRepo opens the SQLite store and wraps it in a repository.
func openRepo(cmd *cobra.Command, log logrus.FieldLogger) (*store.Store, *store.Repo, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, store.NewRepo(st, log), nil
}

// openLogger sets up the file logger. The TUI owns the terminal, so on
// failure logging is discarded with a warning.
func openLogger(cmd *cobra.Command) (*logrus.Logger, io.Closer) {
	level, _ := cmd.Flags().GetString("log-level")
	log, closer, err := logging.New(level, config.DefaultLogPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return log, closer
}

// loadTuning reads the tuning file, falling back to defaults with a warning.
func loadTuning(cmd *cobra.Command) config.Tuning {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	tuning, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ignoring tuning file:", err)
		fmt.Fprintln(os.Stderr, "Using built-in defaults.")
	}
	return tuning
}
