// Package cmd implements the tripd command line interface.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/triplab-ai/tripd/internal/cmd"
	"github.com/triplab-ai/tripd/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*cmd.BaseCmd
}

func Execute() {
	logger, err := configureLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error executing root command: %s", err)
		os.Exit(1)
	}

	rootCmd, err := NewRootCmd(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error executing root command: %s", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd(logger hclog.Logger) (*cobra.Command, error) {
	baseCmd := &cmd.BaseCmd{}
	baseCmd.SetLogger(logger)

	c := &RootCmd{
		BaseCmd: baseCmd,
	}

	rootCmd := &cobra.Command{
		Use:          "tripd <command> [args]",
		Short:        "'tripd' is a travel planning assistant daemon and CLI.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	daemonCmd, err := NewDaemonCmd(baseCmd)
	if err != nil {
		return nil, err
	}

	chatCmd, err := NewChatCmd(baseCmd)
	if err != nil {
		return nil, err
	}

	historyCmd, err := NewHistoryCmd(baseCmd)
	if err != nil {
		return nil, err
	}

	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'tripd' CLI runs a travel planning assistant backed by simulated tool
servers for weather, maps, restaurants, flights and hotels. It can run as a
daemon exposing an HTTP API, or chat interactively from the terminal.`
}

func configureLogger() (hclog.Logger, error) {
	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If TRIPD_LOG_PATH is not set, don't log anywhere.
	logOutput := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "tripd",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func getLogLevel() string {
	lvl := strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return "info"
	}
}
