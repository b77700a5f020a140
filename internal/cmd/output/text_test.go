package output

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// samplePrinter is a minimal Printer used to exercise the text handler.
type samplePrinter struct {
	headerFunc WriteFunc[sample]
	footerFunc WriteFunc[sample]
}

func (p *samplePrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}
	_, _ = fmt.Fprintf(w, "Samples (%d):\n", count)
}

func (p *samplePrinter) SetHeader(fn WriteFunc[sample]) {
	p.headerFunc = fn
}

func (p *samplePrinter) Item(w io.Writer, elem sample) error {
	_, _ = fmt.Fprintf(w, "- %s: %d\n", elem.Name, elem.Count)
	return nil
}

func (p *samplePrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *samplePrinter) SetFooter(fn WriteFunc[sample]) {
	p.footerFunc = fn
}

func TestTextHandler_HandleResults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewTextHandler[sample](&buf, &samplePrinter{})

	require.NoError(t, h.HandleResults(
		sample{Name: "first", Count: 1},
		sample{Name: "second", Count: 2},
	))

	require.Equal(t, "Samples (2):\n- first: 1\n- second: 2\n", buf.String())
}

func TestTextHandler_HandleResultsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewTextHandler[sample](&buf, &samplePrinter{})

	require.NoError(t, h.HandleResults())
	require.Equal(t, "No items found\n", buf.String())
}

func TestTextHandler_HandleError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewTextHandler[sample](&buf, &samplePrinter{})

	err := fmt.Errorf("something broke")
	require.Equal(t, err, h.HandleError(err))
	require.Empty(t, buf.String())
}
