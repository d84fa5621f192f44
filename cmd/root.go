package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/tracklet/internal/annotation"
	"github.com/fakeyudi/tracklet/internal/config"
	"github.com/fakeyudi/tracklet/internal/logging"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// logger is the command logger, writing to stderr.
var logger = logging.Discard()

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "tracklet",
	Short: "Inspect annotation documents and combine shapes into groups",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)

		// The flag wins over both config files.
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		l, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// GetLogger returns the logger configured for the running command.
func GetLogger() *log.Logger {
	return logger
}

// loadDocument opens the annotation document at path.
func loadDocument(path string) (annotation.Store, *annotation.Document, error) {
	store := annotation.NewFileStore(path)
	doc, err := store.Load()
	if err != nil {
		if errors.Is(err, annotation.ErrNoDocument) {
			return nil, nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, nil, err
	}
	return store, doc, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}
