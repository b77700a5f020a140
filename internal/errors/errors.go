// Package errors defines domain-level errors used throughout the application.
// These errors represent business logic failures and are mapped to appropriate HTTP status codes at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/daemon/api_server.go)
// 2. Add a test case to TestMapError (internal/daemon/api_server_test.go)
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrUnknownServer indicates that the requested tool server does not exist in the catalog.
	// Recommended to map to HTTP 404 Not Found.
	ErrUnknownServer = errors.New("unknown server")

	// ErrServerNotConnected indicates that the requested tool server exists in the catalog
	// but no connection has been established to it.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrServerNotConnected = errors.New("server not connected")

	// ErrToolNotAvailable indicates that the requested tool is not part of the tool set
	// negotiated for the server's connection.
	// Recommended to map to HTTP 403 Forbidden.
	ErrToolNotAvailable = errors.New("tool not available")

	// ErrUnknownTool indicates that the tool server has no implementation for the requested tool.
	// This differs from ErrToolNotAvailable: the tool may be advertised in the catalog but
	// the simulated server cannot execute it.
	// Recommended to map to HTTP 404 Not Found.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidToolParams indicates that the supplied tool parameters failed schema validation.
	// Recommended to map to HTTP 400 Bad Request.
	ErrInvalidToolParams = errors.New("invalid tool parameters")

	// ErrMissingLocation indicates that a location entity is required for the requested
	// operation (restaurant or hotel search) but was not extracted from the message.
	// Recommended to map to HTTP 400 Bad Request.
	ErrMissingLocation = errors.New("location is required")

	// ErrMissingQuery indicates that neither a query nor a location entity was available
	// for a map lookup.
	// Recommended to map to HTTP 400 Bad Request.
	ErrMissingQuery = errors.New("query or location is required")

	// ErrTranscriptStore indicates that reading or writing the persisted chat transcript failed.
	// Recommended to map to HTTP 500 Internal Server Error.
	ErrTranscriptStore = errors.New("transcript store failure")
)
