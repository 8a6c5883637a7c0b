package cmd

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/app"
	"github.com/abhisek/studymate/internal/config"
	"github.com/abhisek/studymate/internal/logging"
	"github.com/abhisek/studymate/internal/store"
)

// runApp resolves config, opens the study log, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The TUI owns the terminal, so logs only go to a file if asked.
	log, err := logging.New(cfg.LogLevel, cfg.LogFile, io.Discard)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open study log: %w", err)
	}
	defer st.Close()

	client := api.New(cfg.Server, cfg.Timeout, log)
	sessionID := uuid.NewString()

	log.WithFields(logrus.Fields{
		"server":  cfg.Server,
		"session": sessionID,
	}).Info("starting")

	return app.Run(app.Options{
		Client:    client,
		StudyLog:  st.StudyLog(),
		SessionID: sessionID,
		Server:    cfg.Server,
		Log:       log,
	})
}

// newClient builds an API client for one-shot subcommands, logging to
// stderr.
func newClient(cmd *cobra.Command) (*api.Client, config.Config, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFile, cmd.ErrOrStderr())
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("set up logging: %w", err)
	}
	return api.New(cfg.Server, cfg.Timeout, log), cfg, nil
}
