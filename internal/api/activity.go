package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/domain"
)

const (
	ActivityKindInfo    ActivityKind = "info"
	ActivityKindSuccess ActivityKind = "success"
	ActivityKindError   ActivityKind = "error"
)

// ActivityKind classifies an activity log entry.
type ActivityKind string

// ActivityEntry represents one tool call lifecycle event.
type ActivityEntry struct {
	Timestamp time.Time    `json:"timestamp"`
	Message   string       `json:"message"`
	Kind      ActivityKind `json:"kind"`
	Data      any          `json:"data,omitempty"`
}

// ActivityResponse is the response for GET /activity.
type ActivityResponse struct {
	Body struct {
		Entries []ActivityEntry `doc:"Most-recent-first tool call activity" json:"entries"`
	}
}

// DomainActivityEntry wraps domain.ActivityEntry for conversion to ActivityEntry via ToAPIType.
type DomainActivityEntry domain.ActivityEntry

var _ Convertible[ActivityEntry] = (*DomainActivityEntry)(nil)

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainActivityEntry) ToAPIType() (ActivityEntry, error) {
	kind, err := parseActivityKind(d.Kind)
	if err != nil {
		return ActivityEntry{}, err
	}

	return ActivityEntry{
		Timestamp: d.Timestamp,
		Message:   d.Message,
		Kind:      kind,
		Data:      d.Data,
	}, nil
}

// RegisterActivityRoutes sets up the activity log API endpoint routes.
func RegisterActivityRoutes(routerAPI huma.API, recorder contracts.ActivityRecorder, apiPathPrefix string) {
	activityAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Activity"}

	huma.Register(
		activityAPI,
		huma.Operation{
			OperationID: "listActivity",
			Method:      http.MethodGet,
			Summary:     "List recent tool call activity",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ActivityResponse, error) {
			return handleActivity(recorder)
		},
	)
}

// handleActivity returns the bounded activity log, newest entries first.
func handleActivity(recorder contracts.ActivityRecorder) (*ActivityResponse, error) {
	entries := recorder.Activity()

	apiEntries := make([]ActivityEntry, 0, len(entries))
	for _, entry := range entries {
		data, err := DomainActivityEntry(entry).ToAPIType()
		if err != nil {
			return nil, err
		}
		apiEntries = append(apiEntries, data)
	}

	resp := &ActivityResponse{}
	resp.Body.Entries = apiEntries

	return resp, nil
}

func parseActivityKind(kind domain.ActivityKind) (ActivityKind, error) {
	switch kind {
	case domain.ActivityInfo:
		return ActivityKindInfo, nil
	case domain.ActivitySuccess:
		return ActivityKindSuccess, nil
	case domain.ActivityError:
		return ActivityKindError, nil
	default:
		return "", fmt.Errorf("unknown activity kind: %s", kind)
	}
}
