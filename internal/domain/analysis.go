package domain

const (
	IntentWeather        Intent = "weather_inquiry"
	IntentRestaurant     Intent = "restaurant_inquiry"
	IntentFlight         Intent = "flight_inquiry"
	IntentHotel          Intent = "hotel_inquiry"
	IntentLocation       Intent = "location_inquiry"
	IntentTravelPlanning Intent = "travel_planning"
	IntentGeneral        Intent = "general"
)

// Entity keys extracted by the message analyzer.
const (
	EntityLocation    = "location"
	EntityTimeframe   = "timeframe"
	EntityCuisine     = "cuisine"
	EntityOrigin      = "origin"
	EntityDestination = "destination"
	EntityDate        = "date"
	EntityCheckIn     = "check_in"
	EntityCheckOut    = "check_out"
	EntityQuery       = "query"
	EntityDuration    = "duration"
)

// Timeframe values for the weather intent.
const (
	TimeframeNextWeek = "next_week"
	TimeframeTomorrow = "tomorrow"
	TimeframeToday    = "today"
)

// Intent is the coarse category of a user request.
type Intent string

// Analysis is the result of classifying a single user message.
// It is created fresh per message and immutable once produced.
type Analysis struct {
	// Intent is the detected request category.
	Intent Intent `json:"intent"`

	// Entities maps entity names to extracted values (strings, except
	// duration which is an int). Absent entities have no key.
	Entities map[string]any `json:"entities"`

	// Tools is the ordered sequence of server IDs required to satisfy the intent.
	Tools []string `json:"tools"`

	// Confidence is a fixed per-intent constant in [0,1], not computed from match quality.
	Confidence float64 `json:"confidence"`
}

// StringEntity returns the named entity as a string, or "" when absent or not a string.
func (a Analysis) StringEntity(key string) string {
	v, ok := a.Entities[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IntEntity returns the named entity as an int, or 0 when absent or not an int.
func (a Analysis) IntEntity(key string) int {
	v, ok := a.Entities[key]
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}
