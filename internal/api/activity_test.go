package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/domain"
)

// fakeRecorder serves a scripted activity log.
type fakeRecorder struct {
	entries []domain.ActivityEntry
}

func (r *fakeRecorder) Activity() []domain.ActivityEntry {
	return r.entries
}

func TestParseActivityKind_ValidCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    domain.ActivityKind
		expected ActivityKind
	}{
		{
			"info",
			domain.ActivityInfo,
			ActivityKindInfo,
		},
		{
			"success",
			domain.ActivitySuccess,
			ActivityKindSuccess,
		},
		{
			"error",
			domain.ActivityError,
			ActivityKindError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseActivityKind(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestParseActivityKind_InvalidCase(t *testing.T) {
	t.Parallel()

	input := domain.ActivityKind("invalid-kind")
	_, err := parseActivityKind(input)
	require.Error(t, err)
	require.EqualError(t, err, fmt.Sprintf("unknown activity kind: %s", input))
}

func TestHandleActivity(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	recorder := &fakeRecorder{
		entries: []domain.ActivityEntry{
			{
				Timestamp: at,
				Message:   "Successfully executed get_weather",
				Kind:      domain.ActivitySuccess,
				Data:      map[string]any{"location": "Paris"},
			},
			{
				Timestamp: at.Add(-time.Second),
				Message:   "Calling get_weather on Weather Service",
				Kind:      domain.ActivityInfo,
			},
		},
	}

	resp, err := handleActivity(recorder)
	require.NoError(t, err)

	require.Len(t, resp.Body.Entries, 2)
	require.Equal(t, ActivityKindSuccess, resp.Body.Entries[0].Kind)
	require.Equal(t, "Successfully executed get_weather", resp.Body.Entries[0].Message)
	require.Equal(t, ActivityKindInfo, resp.Body.Entries[1].Kind)
}

func TestHandleActivity_EmptyLog(t *testing.T) {
	t.Parallel()

	resp, err := handleActivity(&fakeRecorder{})
	require.NoError(t, err)
	require.Empty(t, resp.Body.Entries)
}
