package api

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/contracts"
)

// APIVersion is the version used in the OpenAPI spec and URL paths.
const APIVersion = "v1"

// RegisterRoutes registers all API routes on the provided Huma router.
// This is the single source of truth for the API route structure.
// Returns the API path prefix (e.g., "/api/v1") under which the routes are created.
func RegisterRoutes(
	router huma.API,
	cat *catalog.Catalog,
	caller contracts.ToolCaller,
	monitor contracts.ConnectionMonitor,
	recorder contracts.ActivityRecorder,
	asst contracts.Assistant,
	store contracts.TranscriptStore,
) (string, error) {
	if router == nil || reflect.ValueOf(router).IsNil() {
		return "", fmt.Errorf("router cannot be nil")
	}
	if cat == nil {
		return "", fmt.Errorf("catalog cannot be nil")
	}
	if caller == nil || reflect.ValueOf(caller).IsNil() {
		return "", fmt.Errorf("tool caller cannot be nil")
	}
	if monitor == nil || reflect.ValueOf(monitor).IsNil() {
		return "", fmt.Errorf("connection monitor cannot be nil")
	}
	if recorder == nil || reflect.ValueOf(recorder).IsNil() {
		return "", fmt.Errorf("activity recorder cannot be nil")
	}
	if asst == nil || reflect.ValueOf(asst).IsNil() {
		return "", fmt.Errorf("assistant cannot be nil")
	}
	if store == nil || reflect.ValueOf(store).IsNil() {
		return "", fmt.Errorf("transcript store cannot be nil")
	}

	// Extract API version from the router's OpenAPI spec.
	apiVersionID := router.OpenAPI().Info.Version

	// Safe way to ensure /api/{version}.
	apiPathPrefix, err := url.JoinPath("/api", apiVersionID)
	if err != nil {
		return "", fmt.Errorf("failed to construct API path prefix: %w", err)
	}

	// Group all routes under the /api/{version} prefix.
	versionedGroup := huma.NewGroup(router, apiPathPrefix)
	RegisterServerRoutes(versionedGroup, cat, caller, "/servers")
	RegisterHealthRoutes(versionedGroup, cat, monitor, "/health")
	RegisterActivityRoutes(versionedGroup, recorder, "/activity")
	RegisterChatRoutes(versionedGroup, asst, store, "/chat")

	return apiPathPrefix, nil
}
