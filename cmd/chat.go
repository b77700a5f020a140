package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/triplab-ai/tripd/internal/assistant"
	"github.com/triplab-ai/tripd/internal/cmd"
	cmdopts "github.com/triplab-ai/tripd/internal/cmd/options"
	"github.com/triplab-ai/tripd/internal/config"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/flags"
)

// ChatCmd chats with the travel assistant interactively from the terminal,
// without requiring a running daemon.
type ChatCmd struct {
	*cmd.BaseCmd

	cfgLoader config.Loader
}

func NewChatCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ChatCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the travel assistant in the terminal",
		Long: "Starts an interactive chat session with the travel assistant, " +
			"connecting the simulated tool servers in-process.",
		RunE: c.run,
	}

	return cobraCmd, nil
}

func (c *ChatCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := buildStack(logger, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cobraCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cobraCmd.OutOrStdout()

	fmt.Fprintln(out, "Connecting to travel services...")
	if err := st.client.ConnectAll(ctx); err != nil {
		return fmt.Errorf("failed to connect tool servers: %w", err)
	}

	fmt.Fprintf(out, "\n%s\n\n", assistant.Greeting)
	fmt.Fprintln(out, `Type a question, or "exit" to quit.`)

	scanner := bufio.NewScanner(cobraCmd.InOrStdin())

	for {
		fmt.Fprint(out, "\n> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		if _, err := st.transcript.Append(line, domain.SenderUser); err != nil {
			logger.Warn("Failed to persist user message", "error", err)
		}

		reply, err := st.assistant.Process(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("Failed to process message", "error", err)
			reply.Text = assistant.ApologyReply
		}

		if _, err := st.transcript.Append(reply.Text, domain.SenderAssistant); err != nil {
			logger.Warn("Failed to persist assistant reply", "error", err)
		}

		fmt.Fprintf(out, "\n%s\n", reply.Text)
	}

	return scanner.Err()
}
