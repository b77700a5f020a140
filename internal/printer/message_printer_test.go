package printer

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/domain"
)

func TestChatMessagePrinter(t *testing.T) {
	t.Parallel()

	p := &ChatMessagePrinter{}
	var buf bytes.Buffer

	p.Header(&buf, 1)

	err := p.Item(&buf, domain.ChatMessage{
		ID:        "msg-1",
		Text:      "Hello",
		Sender:    domain.SenderUser,
		Timestamp: time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	p.Footer(&buf, 1)

	require.Equal(
		t,
		"Chat transcript (1 message(s)):\n\n[2026-08-31 09:30:00] user:\nHello\n\n",
		buf.String(),
	)
}

func TestChatMessagePrinter_CustomHeaderFooter(t *testing.T) {
	t.Parallel()

	p := &ChatMessagePrinter{}
	p.SetHeader(func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "custom header %d\n", count)
	})
	p.SetFooter(func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "custom footer %d\n", count)
	})

	var buf bytes.Buffer
	p.Header(&buf, 3)
	p.Footer(&buf, 3)

	require.Equal(t, "custom header 3\ncustom footer 3\n", buf.String())
}
