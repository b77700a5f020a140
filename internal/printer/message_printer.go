// Package printer implements text-output printers for the CLI commands.
package printer

import (
	"fmt"
	"io"

	"github.com/triplab-ai/tripd/internal/cmd/output"
	"github.com/triplab-ai/tripd/internal/domain"
)

var _ output.Printer[domain.ChatMessage] = (*ChatMessagePrinter)(nil)

// ChatMessagePrinter renders persisted chat transcript entries.
type ChatMessagePrinter struct {
	headerFunc output.WriteFunc[domain.ChatMessage]
	footerFunc output.WriteFunc[domain.ChatMessage]
}

func (p *ChatMessagePrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}

	_, _ = fmt.Fprintf(w, "Chat transcript (%d message(s)):\n\n", count)
}

func (p *ChatMessagePrinter) SetHeader(fn output.WriteFunc[domain.ChatMessage]) {
	p.headerFunc = fn
}

func (p *ChatMessagePrinter) Item(w io.Writer, elem domain.ChatMessage) error {
	_, _ = fmt.Fprintf(
		w,
		"[%s] %s:\n%s\n\n",
		elem.Timestamp.Format("2006-01-02 15:04:05"),
		elem.Sender,
		elem.Text,
	)

	return nil
}

func (p *ChatMessagePrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ChatMessagePrinter) SetFooter(fn output.WriteFunc[domain.ChatMessage]) {
	p.footerFunc = fn
}
