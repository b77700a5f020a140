package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/triplab-ai/tripd/internal/api"
	"github.com/triplab-ai/tripd/internal/cmd"
	cmdopts "github.com/triplab-ai/tripd/internal/cmd/options"
	"github.com/triplab-ai/tripd/internal/cmd/output"
	"github.com/triplab-ai/tripd/internal/config"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/flags"
	"github.com/triplab-ai/tripd/internal/printer"
	"github.com/triplab-ai/tripd/internal/transcript"
)

// HistoryCmd shows the persisted chat transcript, or with --activity the
// tool call activity log of a running daemon.
type HistoryCmd struct {
	*cmd.BaseCmd

	Format   cmd.OutputFormat
	Activity bool
	Addr     string

	cfgLoader config.Loader
}

func NewHistoryCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &HistoryCmd{
		BaseCmd:   baseCmd,
		Format:    cmd.FormatText,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the persisted chat transcript",
		Long: "Shows the persisted chat transcript, or with --activity the recent " +
			"tool call activity of a running daemon.",
		RunE: c.run,
	}

	allowedFormats := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("output format, one of: %s", allowedFormats.String()),
	)
	cobraCmd.Flags().BoolVar(
		&c.Activity,
		"activity",
		false,
		"show tool call activity from a running daemon instead of the transcript",
	)
	cobraCmd.Flags().StringVar(
		&c.Addr,
		"addr",
		"localhost:8090",
		"daemon address, used with --activity",
	)

	return cobraCmd, nil
}

func (c *HistoryCmd) run(cobraCmd *cobra.Command, _ []string) error {
	if c.Activity {
		return c.runActivity(cobraCmd)
	}

	return c.runTranscript(cobraCmd)
}

func (c *HistoryCmd) runTranscript(cobraCmd *cobra.Command) error {
	logger := c.Logger()

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path, err := transcriptPath(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve transcript path: %w", err)
	}

	store, err := transcript.NewStore(logger, path)
	if err != nil {
		return fmt.Errorf("failed to open transcript store: %w", err)
	}

	handler := newHandler[domain.ChatMessage](c.Format, cobraCmd.OutOrStdout(), &printer.ChatMessagePrinter{})

	return handler.HandleResults(store.Messages()...)
}

func (c *HistoryCmd) runActivity(cobraCmd *cobra.Command) error {
	handler := newHandler[api.ActivityEntry](c.Format, cobraCmd.OutOrStdout(), &printer.ActivityPrinter{})

	entries, err := c.fetchActivity(cobraCmd)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(entries...)
}

func (c *HistoryCmd) fetchActivity(cobraCmd *cobra.Command) ([]api.ActivityEntry, error) {
	url := fmt.Sprintf("http://%s/api/%s/activity", c.Addr, api.APIVersion)

	httpClient := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequestWithContext(cobraCmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach daemon at %s: %w", c.Addr, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daemon returned unexpected status: %s", resp.Status)
	}

	var payload struct {
		Entries []api.ActivityEntry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode activity response: %w", err)
	}

	return payload.Entries, nil
}

// newHandler selects the output handler matching the requested format.
func newHandler[T any](format cmd.OutputFormat, w io.Writer, p output.Printer[T]) output.Handler[T] {
	switch format {
	case cmd.FormatJSON:
		return output.NewJSONHandler[T](w, 2)
	case cmd.FormatYAML:
		return output.NewYAMLHandler[T](w, 2)
	default:
		return output.NewTextHandler[T](w, p)
	}
}
