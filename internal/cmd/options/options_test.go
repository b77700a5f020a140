package options

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/config"
)

type stubLoader struct{}

func (l *stubLoader) Load(_ string) (*config.Config, error) {
	return &config.Config{}, nil
}

func TestNewOptions_Defaults(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions()
	require.NoError(t, err)
	require.IsType(t, &config.DefaultLoader{}, opts.ConfigLoader)
}

func TestNewOptions_WithConfigLoader(t *testing.T) {
	t.Parallel()

	loader := &stubLoader{}

	opts, err := NewOptions(WithConfigLoader(loader))
	require.NoError(t, err)
	require.Same(t, loader, opts.ConfigLoader)
}

func TestNewOptions_NilOptionIgnored(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions(nil)
	require.NoError(t, err)
	require.NotNil(t, opts.ConfigLoader)
}

func TestNewOptions_FailingOption(t *testing.T) {
	t.Parallel()

	failing := func(*CmdOptions) error {
		return fmt.Errorf("boom")
	}

	_, err := NewOptions(failing)
	require.ErrorContains(t, err, "boom")
}
