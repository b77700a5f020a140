package printer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/api"
)

func TestActivityPrinter(t *testing.T) {
	t.Parallel()

	p := &ActivityPrinter{}
	var buf bytes.Buffer

	p.Header(&buf, 2)

	err := p.Item(&buf, api.ActivityEntry{
		Timestamp: time.Date(2026, 8, 31, 9, 30, 15, 0, time.UTC),
		Message:   "Successfully executed get_weather",
		Kind:      api.ActivityKindSuccess,
	})
	require.NoError(t, err)

	err = p.Item(&buf, api.ActivityEntry{
		Timestamp: time.Date(2026, 8, 31, 9, 30, 14, 0, time.UTC),
		Message:   "Calling get_weather on Weather Service",
		Kind:      api.ActivityKindInfo,
	})
	require.NoError(t, err)

	p.Footer(&buf, 2)

	require.Equal(
		t,
		"Tool activity (2 entries, newest first):\n\n"+
			"[09:30:15] success Successfully executed get_weather\n"+
			"[09:30:14] info    Calling get_weather on Weather Service\n",
		buf.String(),
	)
}
