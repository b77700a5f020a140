package assistant

import (
	"fmt"
	"strings"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/domain"
)

// Per-domain fallback replies used when the backing tool call failed.
const (
	weatherUnavailable    = "I couldn't retrieve weather information. Please try again or specify a different location."
	restaurantUnavailable = "I couldn't find restaurant information. Please try again or specify a different location."
	flightUnavailable     = "I couldn't find flight information. Please try again or specify different locations."
	hotelUnavailable      = "I couldn't find hotel information. Please try again or specify a different location."
	locationUnavailable   = "I couldn't find location information. Please try again with a different query."
)

// capabilityMenu is the reply for general chit-chat and unrecognized requests.
const capabilityMenu = "I'm here to help you plan your perfect trip! I can assist you with:\n\n" +
	"🌤️ **Weather information** - \"What's the weather like in Paris next week?\"\n" +
	"🍽️ **Restaurant recommendations** - \"Find Italian restaurants near the Eiffel Tower\"\n" +
	"✈️ **Flight search** - \"Find flights from New York to London on March 15\"\n" +
	"🏨 **Hotel booking** - \"Find hotels in Tokyo with good ratings\"\n" +
	"📍 **Location information** - \"Where is the Colosseum?\"\n" +
	"🗺️ **Travel planning** - \"Plan a 5-day trip to Rome\"\n\n" +
	"What would you like to know about your next adventure?"

// Composer renders tool results into user-facing Markdown replies.
// It is stateless and safe for concurrent use.
type Composer struct{}

// NewComposer creates a response composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose renders the reply for an analyzed message and its tool results.
// The routine is selected by intent, not by which result slots are present.
func (c *Composer) Compose(analysis domain.Analysis, results Results) string {
	switch analysis.Intent {
	case domain.IntentWeather:
		return c.composeWeather(results[catalog.ServerWeather], analysis)
	case domain.IntentRestaurant:
		return c.composeRestaurants(results[catalog.ServerRestaurants], analysis)
	case domain.IntentFlight:
		return c.composeFlights(results[catalog.ServerFlights], analysis)
	case domain.IntentHotel:
		return c.composeHotels(results[catalog.ServerHotels], analysis)
	case domain.IntentLocation:
		return c.composeLocations(results[catalog.ServerMaps], analysis)
	case domain.IntentTravelPlanning:
		return c.composeTravelPlan(results, analysis)
	default:
		return capabilityMenu
	}
}

func (c *Composer) composeWeather(data map[string]any, analysis domain.Analysis) string {
	if failed(data) {
		return weatherUnavailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's the weather information for %s:\n\n", analysis.StringEntity(domain.EntityLocation))

	if current := mapValue(data, "current"); current != nil {
		b.WriteString("**Current Weather:**\n")
		fmt.Fprintf(&b, "🌡️ Temperature: %s°C\n", number(current["temperature"]))
		fmt.Fprintf(&b, "☁️ Condition: %v\n", current["condition"])
		fmt.Fprintf(&b, "💧 Humidity: %s%%\n", number(current["humidity"]))
		fmt.Fprintf(&b, "💨 Wind Speed: %s km/h\n\n", number(current["wind_speed"]))
	}

	if forecast := mapValue(data, "forecast"); forecast != nil {
		b.WriteString("**5-Day Forecast:**\n")
		for _, day := range sliceValue(forecast, "days") {
			fmt.Fprintf(
				&b,
				"📅 %v: %v, High: %s°C, Low: %s°C\n",
				day["date"], day["condition"], number(day["high"]), number(day["low"]),
			)
		}
	}

	return b.String()
}

func (c *Composer) composeRestaurants(data map[string]any, analysis domain.Analysis) string {
	if failed(data) {
		return restaurantUnavailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are some restaurant recommendations near %s:\n\n", analysis.StringEntity(domain.EntityLocation))

	if cuisine := analysis.StringEntity(domain.EntityCuisine); cuisine != "" {
		fmt.Fprintf(&b, "**%s Restaurants:**\n", cuisine)
	} else {
		b.WriteString("**Top Restaurants:**\n")
	}

	for i, restaurant := range sliceValue(data, "results") {
		fmt.Fprintf(&b, "%d. **%v**\n", i+1, restaurant["name"])
		fmt.Fprintf(&b, "   ⭐ Rating: %v/5\n", restaurant["rating"])
		fmt.Fprintf(&b, "   💰 Price: %v\n", restaurant["price_level"])
		fmt.Fprintf(&b, "   📍 Address: %v\n", restaurant["address"])
		fmt.Fprintf(&b, "   📞 Phone: %v\n\n", restaurant["phone"])
	}

	return b.String()
}

func (c *Composer) composeFlights(data map[string]any, analysis domain.Analysis) string {
	if failed(data) {
		return flightUnavailable
	}

	var b strings.Builder
	fmt.Fprintf(
		&b,
		"Here are some flight options from %s to %s:\n\n",
		analysis.StringEntity(domain.EntityOrigin),
		analysis.StringEntity(domain.EntityDestination),
	)

	for i, flight := range sliceValue(data, "results") {
		fmt.Fprintf(&b, "%d. **%v - %v**\n", i+1, flight["airline"], flight["flight_number"])
		fmt.Fprintf(&b, "   ✈️ Departure: %v\n", flight["departure_time"])
		fmt.Fprintf(&b, "   🛬 Arrival: %v\n", flight["arrival_time"])
		fmt.Fprintf(&b, "   ⏱️ Duration: %v\n", flight["duration"])
		fmt.Fprintf(&b, "   💰 Price: $%s\n", number(flight["price"]))
		fmt.Fprintf(&b, "   🔄 Stops: %s\n\n", stops(flight["stops"]))
	}

	return b.String()
}

func (c *Composer) composeHotels(data map[string]any, analysis domain.Analysis) string {
	if failed(data) {
		return hotelUnavailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are some hotel options in %s:\n\n", analysis.StringEntity(domain.EntityLocation))

	for i, hotel := range sliceValue(data, "results") {
		fmt.Fprintf(&b, "%d. **%v**\n", i+1, hotel["name"])
		fmt.Fprintf(&b, "   ⭐ Rating: %v/5\n", hotel["rating"])
		fmt.Fprintf(&b, "   💰 Price per night: $%s\n", number(hotel["price_per_night"]))
		fmt.Fprintf(&b, "   📍 Address: %v\n", hotel["address"])
		fmt.Fprintf(&b, "   🏨 Amenities: %s\n\n", strings.Join(stringsValue(hotel, "amenities"), ", "))
	}

	return b.String()
}

func (c *Composer) composeLocations(data map[string]any, analysis domain.Analysis) string {
	if failed(data) {
		return locationUnavailable
	}

	if _, ok := data["results"]; ok {
		var b strings.Builder
		fmt.Fprintf(&b, "Here are some locations matching %q:\n\n", analysis.StringEntity(domain.EntityQuery))

		for i, loc := range sliceValue(data, "results") {
			coords := mapValue(loc, "coordinates")
			fmt.Fprintf(&b, "%d. **%v**\n", i+1, loc["name"])
			fmt.Fprintf(&b, "   📍 Address: %v\n", loc["address"])
			fmt.Fprintf(&b, "   📍 Coordinates: %s, %s\n", coordinate(coords["lat"]), coordinate(coords["lng"]))
			fmt.Fprintf(&b, "   🏷️ Type: %v\n\n", loc["type"])
		}

		return b.String()
	}

	if coords := mapValue(data, "coordinates"); coords != nil {
		return fmt.Sprintf(
			"Here are the coordinates for %s:\n\n📍 Latitude: %s\n📍 Longitude: %s\n🌍 Timezone: %v",
			analysis.StringEntity(domain.EntityLocation),
			coordinate(coords["lat"]),
			coordinate(coords["lng"]),
			data["timezone"],
		)
	}

	return "Location information not available."
}

// composeTravelPlan renders the combined plan. Sections whose backing tool
// failed are silently omitted rather than surfacing the error.
func (c *Composer) composeTravelPlan(results Results, analysis domain.Analysis) string {
	var b strings.Builder

	duration := ""
	if d := analysis.IntEntity(domain.EntityDuration); d > 0 {
		duration = fmt.Sprintf("%d", d)
	}
	fmt.Fprintf(
		&b,
		"Here's a travel plan for your %s day trip to %s:\n\n",
		duration,
		analysis.StringEntity(domain.EntityDestination),
	)

	if current := mapValue(results[catalog.ServerWeather], "current"); current != nil {
		b.WriteString("**Weather:**\n")
		fmt.Fprintf(&b, "🌡️ Current temperature: %s°C\n", number(current["temperature"]))
		fmt.Fprintf(&b, "☁️ Condition: %v\n\n", current["condition"])
	}

	if hotels := topResults(results[catalog.ServerHotels], 3); len(hotels) > 0 {
		b.WriteString("**Recommended Hotels:**\n")
		for i, hotel := range hotels {
			fmt.Fprintf(
				&b,
				"%d. **%v** - ⭐ %v/5 - 💰 $%s/night\n",
				i+1, hotel["name"], hotel["rating"], number(hotel["price_per_night"]),
			)
		}
		b.WriteString("\n")
	}

	if restaurants := topResults(results[catalog.ServerRestaurants], 3); len(restaurants) > 0 {
		b.WriteString("**Top Restaurants:**\n")
		for i, restaurant := range restaurants {
			fmt.Fprintf(
				&b,
				"%d. **%v** - ⭐ %v/5 - 💰 %v\n",
				i+1, restaurant["name"], restaurant["rating"], restaurant["price_level"],
			)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Tips for your trip:**\n")
	b.WriteString("• Check the weather forecast before packing\n")
	b.WriteString("• Book accommodations in advance for better rates\n")
	b.WriteString("• Try local cuisine at recommended restaurants\n")
	b.WriteString("• Consider travel insurance for peace of mind\n")

	return b.String()
}

// failed reports whether a result slot is absent or carries an error marker.
func failed(data map[string]any) bool {
	if data == nil {
		return true
	}
	_, ok := data["error"]
	return ok
}

// topResults returns up to n entries of a slot's "results" list, or nil
// when the slot is missing or errored.
func topResults(data map[string]any, n int) []map[string]any {
	if failed(data) {
		return nil
	}
	results := sliceValue(data, "results")
	if len(results) > n {
		results = results[:n]
	}
	return results
}

// mapValue returns the named nested object, or nil when absent or not an object.
func mapValue(data map[string]any, key string) map[string]any {
	if m, ok := data[key].(map[string]any); ok {
		return m
	}
	return nil
}

// sliceValue returns the named list of objects. It accepts both native
// []map[string]any values and JSON-decoded []any values.
func sliceValue(data map[string]any, key string) []map[string]any {
	switch v := data[key].(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// stringsValue returns the named list of strings, tolerating JSON-decoded []any.
func stringsValue(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// number formats a numeric value without a decimal part for whole numbers.
// Tool results carry int values natively and float64 values after a JSON
// round trip.
func number(v any) string {
	switch n := v.(type) {
	case int:
		return fmt.Sprintf("%d", n)
	case int64:
		return fmt.Sprintf("%d", n)
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%v", n)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// coordinate renders a latitude or longitude with four decimal places.
func coordinate(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.4f", f)
	}
	return fmt.Sprintf("%v", v)
}

// stops renders the stop count, with zero shown as a direct flight.
func stops(v any) string {
	n := number(v)
	if n == "0" {
		return "Direct"
	}
	return n + " stop(s)"
}
