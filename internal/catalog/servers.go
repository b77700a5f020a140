package catalog

import "github.com/mark3labs/mcp-go/mcp"

// stringProp builds a minimal string property definition for a tool input schema.
func stringProp(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

func objectSchema(properties map[string]any, required ...string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func weatherServer() Server {
	return Server{
		ID:          ServerWeather,
		Name:        "Weather Service",
		Description: "Get weather forecasts and conditions",
		Tools: []mcp.Tool{
			{
				Name:        "get_weather",
				Description: "Get current weather conditions for a location",
				InputSchema: objectSchema(map[string]any{
					"location": stringProp("Name of the city or place"),
				}, "location"),
			},
			{
				Name:        "get_forecast",
				Description: "Get a 5-day weather forecast for a location",
				InputSchema: objectSchema(map[string]any{
					"location": stringProp("Name of the city or place"),
				}, "location"),
			},
			{
				Name:        "get_weather_alerts",
				Description: "Get active weather alerts for a location",
				InputSchema: objectSchema(map[string]any{
					"location": stringProp("Name of the city or place"),
				}, "location"),
			},
		},
	}
}

func mapsServer() Server {
	return Server{
		ID:          ServerMaps,
		Name:        "Map Service",
		Description: "Location search and geocoding",
		Tools: []mcp.Tool{
			{
				Name:        "search_location",
				Description: "Search for places matching a free-text query",
				InputSchema: objectSchema(map[string]any{
					"query": stringProp("Free-text search query"),
				}, "query"),
			},
			{
				Name:        "get_coordinates",
				Description: "Look up the coordinates and timezone of a location",
				InputSchema: objectSchema(map[string]any{
					"location": stringProp("Name of the city or place"),
				}, "location"),
			},
			{
				Name:        "get_place_details",
				Description: "Get detailed information about a place",
				InputSchema: objectSchema(map[string]any{
					"place_id": stringProp("Identifier of the place"),
				}, "place_id"),
			},
		},
	}
}

func restaurantsServer() Server {
	return Server{
		ID:          ServerRestaurants,
		Name:        "Restaurant Finder",
		Description: "Find restaurants and dining options",
		Tools: []mcp.Tool{
			{
				Name:        "search_restaurants",
				Description: "Search for restaurants near a location, optionally filtered by cuisine",
				InputSchema: objectSchema(map[string]any{
					"location": stringProp("Name of the city or place"),
					"cuisine":  stringProp("Cuisine filter, e.g. Italian"),
				}, "location"),
			},
			{
				Name:        "get_restaurant_details",
				Description: "Get detailed information about a restaurant",
				InputSchema: objectSchema(map[string]any{
					"restaurant_id": stringProp("Identifier of the restaurant"),
				}, "restaurant_id"),
			},
			{
				Name:        "get_reviews",
				Description: "Get reviews for a restaurant",
				InputSchema: objectSchema(map[string]any{
					"restaurant_id": stringProp("Identifier of the restaurant"),
				}, "restaurant_id"),
			},
		},
	}
}

func flightsServer() Server {
	return Server{
		ID:          ServerFlights,
		Name:        "Flight Search",
		Description: "Search and book flights",
		Tools: []mcp.Tool{
			{
				Name:        "search_flights",
				Description: "Search for flights between two locations on a date",
				InputSchema: objectSchema(map[string]any{
					"from": stringProp("Origin city or airport"),
					"to":   stringProp("Destination city or airport"),
					"date": stringProp("Departure date"),
				}),
			},
			{
				Name:        "get_flight_details",
				Description: "Get detailed information about a flight",
				InputSchema: objectSchema(map[string]any{
					"flight_number": stringProp("Flight number, e.g. AA123"),
				}, "flight_number"),
			},
			{
				Name:        "check_prices",
				Description: "Check current prices for a route",
				InputSchema: objectSchema(map[string]any{
					"from": stringProp("Origin city or airport"),
					"to":   stringProp("Destination city or airport"),
				}),
			},
		},
	}
}

func hotelsServer() Server {
	return Server{
		ID:          ServerHotels,
		Name:        "Hotel Booking",
		Description: "Find and book hotels",
		Tools: []mcp.Tool{
			{
				Name:        "search_hotels",
				Description: "Search for hotels in a location for a date range",
				InputSchema: objectSchema(map[string]any{
					"location":  stringProp("Name of the city or place"),
					"check_in":  stringProp("Check-in date (YYYY-MM-DD)"),
					"check_out": stringProp("Check-out date (YYYY-MM-DD)"),
				}, "location"),
			},
			{
				Name:        "get_hotel_details",
				Description: "Get detailed information about a hotel",
				InputSchema: objectSchema(map[string]any{
					"hotel_id": stringProp("Identifier of the hotel"),
				}, "hotel_id"),
			},
			{
				Name:        "check_availability",
				Description: "Check room availability for a hotel",
				InputSchema: objectSchema(map[string]any{
					"hotel_id": stringProp("Identifier of the hotel"),
				}, "hotel_id"),
			},
		},
	}
}
