package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/errors"
)

// ApologyReply is the fixed fallback shown to users when processing fails outright.
const ApologyReply = "I apologize, but I encountered an error while processing your request. " +
	"Please try rephrasing your question or ask about something else."

// Results maps server IDs to tool execution output.
// A failed tool's slot holds a single "error" key carrying the failure message.
type Results map[string]map[string]any

// Errored reports whether the named result slot is missing or carries an error.
func (r Results) Errored(serverID string) bool {
	res, ok := r[serverID]
	if !ok {
		return true
	}
	_, failed := res["error"]
	return failed
}

// Orchestrator glues the analyzer, tool client and composer together to
// process one message at a time. NewOrchestrator should be used to create
// instances of Orchestrator.
type Orchestrator struct {
	logger   hclog.Logger
	caller   contracts.ToolCaller
	analyzer *Analyzer
	composer *Composer
	now      func() time.Time
}

var _ contracts.Assistant = (*Orchestrator)(nil)

// NewOrchestrator creates a conversation orchestrator with explicit dependencies.
func NewOrchestrator(
	logger hclog.Logger,
	caller contracts.ToolCaller,
	analyzer *Analyzer,
	composer *Composer,
) (*Orchestrator, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if caller == nil {
		return nil, fmt.Errorf("tool caller cannot be nil")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}
	if composer == nil {
		return nil, fmt.Errorf("composer cannot be nil")
	}

	return &Orchestrator{
		logger:   logger.Named("orchestrator"),
		caller:   caller,
		analyzer: analyzer,
		composer: composer,
		now:      time.Now,
	}, nil
}

// Process analyzes the message, executes the required tools in order and
// composes the reply. Per-tool failures are isolated into the corresponding
// result slot and never abort the whole request; the only fatal path is a
// failure outside the per-tool boundary, in which case callers should
// substitute ApologyReply.
func (o *Orchestrator) Process(ctx context.Context, text string) (domain.Reply, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reply{}, err
	}

	analysis := o.analyzer.Analyze(text)
	o.logger.Debug(
		"Message analyzed",
		"intent", analysis.Intent,
		"tools", analysis.Tools,
		"confidence", analysis.Confidence,
	)

	results := o.executeTools(ctx, analysis)

	return domain.Reply{
		Text:     o.composer.Compose(analysis, results),
		Analysis: analysis,
	}, nil
}

// executeTools runs the per-server execution routines sequentially in the
// order the analyzer requested them. One tool's calls complete before the
// next tool is attempted.
func (o *Orchestrator) executeTools(ctx context.Context, analysis domain.Analysis) Results {
	results := make(Results, len(analysis.Tools))

	for _, serverID := range analysis.Tools {
		var (
			res map[string]any
			err error
		)

		switch serverID {
		case catalog.ServerWeather:
			res, err = o.executeWeather(ctx, analysis)
		case catalog.ServerRestaurants:
			res, err = o.executeRestaurants(ctx, analysis)
		case catalog.ServerFlights:
			res, err = o.executeFlights(ctx, analysis)
		case catalog.ServerHotels:
			res, err = o.executeHotels(ctx, analysis)
		case catalog.ServerMaps:
			res, err = o.executeMaps(ctx, analysis)
		default:
			err = fmt.Errorf("%w: %s", errors.ErrUnknownServer, serverID)
		}

		if err != nil {
			o.logger.Error("Tool execution failed", "server", serverID, "error", err)
			results[serverID] = map[string]any{"error": err.Error()}
			continue
		}

		results[serverID] = res
	}

	return results
}

// executeWeather fetches current conditions and, for next-week requests,
// the 5-day forecast. Without a location entity it returns an empty result.
func (o *Orchestrator) executeWeather(ctx context.Context, analysis domain.Analysis) (map[string]any, error) {
	results := map[string]any{}

	location := analysis.StringEntity(domain.EntityLocation)
	if location == "" {
		return results, nil
	}

	current, err := o.caller.CallTool(ctx, catalog.ServerWeather, "get_weather", map[string]any{
		"location": location,
	})
	if err != nil {
		return nil, err
	}
	results["current"] = current

	if analysis.StringEntity(domain.EntityTimeframe) == domain.TimeframeNextWeek {
		forecast, err := o.caller.CallTool(ctx, catalog.ServerWeather, "get_forecast", map[string]any{
			"location": location,
		})
		if err != nil {
			return nil, err
		}
		results["forecast"] = forecast
	}

	return results, nil
}

func (o *Orchestrator) executeRestaurants(ctx context.Context, analysis domain.Analysis) (map[string]any, error) {
	location := analysis.StringEntity(domain.EntityLocation)
	if location == "" {
		return nil, fmt.Errorf("%w for restaurant search", errors.ErrMissingLocation)
	}

	params := map[string]any{
		"location": location,
	}
	if cuisine := analysis.StringEntity(domain.EntityCuisine); cuisine != "" {
		params["cuisine"] = cuisine
	}

	return o.caller.CallTool(ctx, catalog.ServerRestaurants, "search_restaurants", params)
}

// executeFlights tolerates missing origin/destination (they render as
// "Unknown" downstream) and defaults the date to today.
func (o *Orchestrator) executeFlights(ctx context.Context, analysis domain.Analysis) (map[string]any, error) {
	params := map[string]any{}

	if origin := analysis.StringEntity(domain.EntityOrigin); origin != "" {
		params["from"] = origin
	}
	if destination := analysis.StringEntity(domain.EntityDestination); destination != "" {
		params["to"] = destination
	}
	if date := analysis.StringEntity(domain.EntityDate); date != "" {
		params["date"] = date
	} else {
		params["date"] = o.now().Format("2006-01-02")
	}

	return o.caller.CallTool(ctx, catalog.ServerFlights, "search_flights", params)
}

func (o *Orchestrator) executeHotels(ctx context.Context, analysis domain.Analysis) (map[string]any, error) {
	location := analysis.StringEntity(domain.EntityLocation)
	if location == "" {
		return nil, fmt.Errorf("%w for hotel search", errors.ErrMissingLocation)
	}

	params := map[string]any{
		"location": location,
	}
	if checkIn := analysis.StringEntity(domain.EntityCheckIn); checkIn != "" {
		params["check_in"] = checkIn
	}
	if checkOut := analysis.StringEntity(domain.EntityCheckOut); checkOut != "" {
		params["check_out"] = checkOut
	}

	return o.caller.CallTool(ctx, catalog.ServerHotels, "search_hotels", params)
}

// executeMaps prefers a free-text query (location search) over a bare
// location (coordinate lookup).
func (o *Orchestrator) executeMaps(ctx context.Context, analysis domain.Analysis) (map[string]any, error) {
	query := analysis.StringEntity(domain.EntityQuery)
	location := analysis.StringEntity(domain.EntityLocation)

	switch {
	case query != "":
		return o.caller.CallTool(ctx, catalog.ServerMaps, "search_location", map[string]any{
			"query": query,
		})
	case location != "":
		return o.caller.CallTool(ctx, catalog.ServerMaps, "get_coordinates", map[string]any{
			"location": location,
		})
	default:
		return nil, fmt.Errorf("%w for map search", errors.ErrMissingQuery)
	}
}
