// Package assistant implements the travel assistant core: message analysis,
// tool orchestration and response composition.
package assistant

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/domain"
)

// Fixed per-intent confidence constants. These are not computed from match
// quality; they mirror the classifier's design.
const (
	confidenceWeather    = 0.8
	confidenceRestaurant = 0.8
	confidenceFlight     = 0.7
	confidenceHotel      = 0.7
	confidenceLocation   = 0.8
	confidencePlanning   = 0.6
	confidenceGeneral    = 0.5
)

// Entity extraction patterns. Applied to the original (not lower-cased) text.
var (
	weatherLocationRe    = regexp.MustCompile(`(?i)in\s+([A-Za-z\s]+?)(?:\?|$|\s+for|\s+next|\s+this)`)
	restaurantLocationRe = regexp.MustCompile(`(?i)near\s+([A-Za-z\s]+?)(?:\?|$|\s+or|\s+and)`)
	cuisineRe            = regexp.MustCompile(`(?i)(Italian|Chinese|Mexican|Japanese|Indian|French|Thai|Greek|Spanish|American)\s+food`)
	flightRouteRe        = regexp.MustCompile(`(?i)from\s+([A-Za-z\s]+?)\s+to\s+([A-Za-z\s]+?)(?:\?|$|\s+on|\s+for)`)
	flightDateRe         = regexp.MustCompile(`(?i)on\s+(\w+\s+\d{1,2},?\s+\d{4}|\w+\s+\d{1,2}|\d{1,2}/\d{1,2}/\d{4})`)
	hotelLocationRe      = regexp.MustCompile(`(?i)in\s+([A-Za-z\s]+?)(?:\?|$|\s+from|\s+on)`)
	whereIsRe            = regexp.MustCompile(`(?i)where is\s+([A-Za-z\s]+?)(?:\?|$)`)
	destinationRe        = regexp.MustCompile(`(?i)(?:plan|visit|trip to)\s+([A-Za-z\s]+?)(?:\?|$|\s+for|\s+on)`)
	durationRe           = regexp.MustCompile(`(?i)(\d+)[\s-]*(?:day|days)`)
)

// Analyzer classifies user messages into intents and extracts entities.
// It is stateless and safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer creates a message analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze maps raw user text to an intent, extracted entities and the ordered
// list of tool servers required to satisfy the request.
//
// Intent branches are evaluated in a fixed priority order and are mutually
// exclusive: only the first matching category is selected. A message matching
// both weather and restaurant keywords classifies as weather only. This
// single-intent limitation is intentional; compound requests are only ever
// partially handled.
func (a *Analyzer) Analyze(text string) domain.Analysis {
	lower := strings.ToLower(text)

	analysis := domain.Analysis{
		Intent:     domain.IntentGeneral,
		Entities:   map[string]any{},
		Tools:      nil,
		Confidence: confidenceGeneral,
	}

	switch {
	case containsAny(lower, "weather", "temperature", "forecast"):
		analysis.Intent = domain.IntentWeather
		analysis.Tools = []string{catalog.ServerWeather}
		analysis.Confidence = confidenceWeather

		if m := weatherLocationRe.FindStringSubmatch(text); m != nil {
			analysis.Entities[domain.EntityLocation] = strings.TrimSpace(m[1])
		}

		switch {
		case strings.Contains(lower, "next week"):
			analysis.Entities[domain.EntityTimeframe] = domain.TimeframeNextWeek
		case strings.Contains(lower, "tomorrow"):
			analysis.Entities[domain.EntityTimeframe] = domain.TimeframeTomorrow
		case strings.Contains(lower, "today"):
			analysis.Entities[domain.EntityTimeframe] = domain.TimeframeToday
		}

	case containsAny(lower, "restaurant", "food", "eat", "dining"):
		analysis.Intent = domain.IntentRestaurant
		analysis.Tools = []string{catalog.ServerRestaurants}
		analysis.Confidence = confidenceRestaurant

		if m := restaurantLocationRe.FindStringSubmatch(text); m != nil {
			analysis.Entities[domain.EntityLocation] = strings.TrimSpace(m[1])
		}
		if m := cuisineRe.FindStringSubmatch(text); m != nil {
			analysis.Entities[domain.EntityCuisine] = m[1]
		}

	case containsAny(lower, "flight", "fly", "airport", "plane"):
		analysis.Intent = domain.IntentFlight
		analysis.Tools = []string{catalog.ServerFlights}
		analysis.Confidence = confidenceFlight

		if m := flightRouteRe.FindStringSubmatch(text); m != nil {
			analysis.Entities[domain.EntityOrigin] = strings.TrimSpace(m[1])
			analysis.Entities[domain.EntityDestination] = strings.TrimSpace(m[2])
		}
		if m := flightDateRe.FindStringSubmatch(text); m != nil {
			analysis.Entities[domain.EntityDate] = m[1]
		}

	case containsAny(lower, "hotel", "stay", "accommodation"):
		analysis.Intent = domain.IntentHotel
		analysis.Tools = []string{catalog.ServerHotels}
		analysis.Confidence = confidenceHotel

		if m := hotelLocationRe.FindStringSubmatch(text); m != nil {
			analysis.Entities[domain.EntityLocation] = strings.TrimSpace(m[1])
		}

	case containsAny(lower, "where is", "location", "address", "coordinates"):
		analysis.Intent = domain.IntentLocation
		analysis.Tools = []string{catalog.ServerMaps}
		analysis.Confidence = confidenceLocation

		if m := whereIsRe.FindStringSubmatch(text); m != nil {
			analysis.Entities[domain.EntityQuery] = strings.TrimSpace(m[1])
		}

	case containsAny(lower, "plan", "trip", "itinerary", "visit"):
		analysis.Intent = domain.IntentTravelPlanning
		analysis.Tools = []string{
			catalog.ServerWeather,
			catalog.ServerMaps,
			catalog.ServerRestaurants,
			catalog.ServerFlights,
			catalog.ServerHotels,
		}
		analysis.Confidence = confidencePlanning

		if m := destinationRe.FindStringSubmatch(text); m != nil {
			analysis.Entities[domain.EntityDestination] = strings.TrimSpace(m[1])
		}
		if m := durationRe.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				analysis.Entities[domain.EntityDuration] = n
			}
		}
	}

	return analysis
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
