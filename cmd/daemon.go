package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/triplab-ai/tripd/internal/cmd"
	cmdopts "github.com/triplab-ai/tripd/internal/cmd/options"
	"github.com/triplab-ai/tripd/internal/config"
	"github.com/triplab-ai/tripd/internal/daemon"
	"github.com/triplab-ai/tripd/internal/flags"
)

// DefaultAPIAddr is the default address the daemon binds the HTTP API to.
const DefaultAPIAddr = "0.0.0.0:8090"

// DaemonCmd runs the travel assistant daemon with its HTTP API.
type DaemonCmd struct {
	*cmd.BaseCmd

	Addr string

	cfgLoader config.Loader
}

func NewDaemonCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DaemonCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Start the travel assistant daemon",
		Long: "Starts the travel assistant daemon, connecting the simulated tool servers " +
			"and exposing the chat and health HTTP API.",
		RunE: c.run,
	}

	cobraCmd.Flags().StringVar(
		&c.Addr,
		"addr",
		DefaultAPIAddr,
		"address to bind the API server",
	)

	return cobraCmd, nil
}

func (c *DaemonCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := buildStack(logger, cfg)
	if err != nil {
		return err
	}

	// An explicit --addr flag wins over the config file.
	addr := c.Addr
	if !cobraCmd.Flags().Changed("addr") && cfg.API != nil && cfg.API.Addr != nil {
		addr = *cfg.API.Addr
	}

	deps, err := daemon.NewAPIDependencies(
		logger,
		st.catalog,
		st.client,
		st.client,
		st.client,
		st.assistant,
		st.transcript,
		addr,
	)
	if err != nil {
		return fmt.Errorf("failed to create API dependencies: %w", err)
	}

	apiServer, err := daemon.NewAPIServer(deps, apiOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	d, err := daemon.NewDaemon(logger, st.client, st.transcript, apiServer)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	ctx, stop := signal.NotifyContext(cobraCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting daemon", "addr", addr)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "Starting tripd daemon on %s\n", addr)

	runErr := make(chan error, 1)
	go func() {
		runErr <- d.StartAndManage(ctx)
	}()

	select {
	case err := <-runErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Daemon terminated with error", "error", err)
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping daemon")
		if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	return nil
}
