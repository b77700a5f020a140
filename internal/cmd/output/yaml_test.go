package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLHandler_HandleResults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewYAMLHandler[sample](&buf, 2)

	require.NoError(t, h.HandleResults(
		sample{Name: "first", Count: 1},
		sample{Name: "second", Count: 2},
	))

	var payload ResultsPayload[sample]
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &payload))
	require.Len(t, payload.Results, 2)
	require.Equal(t, "second", payload.Results[1].Name)
	require.Equal(t, 2, payload.Results[1].Count)
}

func TestYAMLHandler_HandleError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewYAMLHandler[sample](&buf, 2)

	require.NoError(t, h.HandleError(fmt.Errorf("something broke")))
	require.Equal(t, "error: something broke\n", buf.String())
}
