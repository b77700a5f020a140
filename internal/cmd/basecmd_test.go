package cmd

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestBaseCmd_LoggerFallback(t *testing.T) {
	c := &BaseCmd{}

	logger := c.Logger()
	require.NotNil(t, logger)

	// The fallback logger is cached for subsequent calls.
	require.Same(t, logger, c.Logger())
}

func TestBaseCmd_SetLogger(t *testing.T) {
	c := &BaseCmd{}

	custom := hclog.NewNullLogger()
	c.SetLogger(custom)

	require.Same(t, custom, c.Logger())
}
