package printer

import (
	"fmt"
	"io"

	"github.com/triplab-ai/tripd/internal/api"
	"github.com/triplab-ai/tripd/internal/cmd/output"
)

var _ output.Printer[api.ActivityEntry] = (*ActivityPrinter)(nil)

// ActivityPrinter renders tool call activity log entries fetched from a
// running daemon.
type ActivityPrinter struct {
	headerFunc output.WriteFunc[api.ActivityEntry]
	footerFunc output.WriteFunc[api.ActivityEntry]
}

func (p *ActivityPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}

	_, _ = fmt.Fprintf(w, "Tool activity (%d entries, newest first):\n\n", count)
}

func (p *ActivityPrinter) SetHeader(fn output.WriteFunc[api.ActivityEntry]) {
	p.headerFunc = fn
}

func (p *ActivityPrinter) Item(w io.Writer, elem api.ActivityEntry) error {
	_, _ = fmt.Fprintf(
		w,
		"[%s] %-7s %s\n",
		elem.Timestamp.Format("15:04:05"),
		elem.Kind,
		elem.Message,
	)

	return nil
}

func (p *ActivityPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ActivityPrinter) SetFooter(fn output.WriteFunc[api.ActivityEntry]) {
	p.footerFunc = fn
}
