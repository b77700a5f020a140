package mock

import (
	"fmt"
	"time"

	"github.com/triplab-ai/tripd/internal/errors"
)

var weatherConditions = []string{"Sunny", "Cloudy", "Rainy", "Partly Cloudy"}

// stringParam returns the named string parameter, or fallback when absent or not a string.
func stringParam(params map[string]any, key string, fallback string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func (s *Server) weatherPayload(tool string, params map[string]any) (map[string]any, error) {
	location := stringParam(params, "location", "Unknown")

	switch tool {
	case "get_weather":
		return map[string]any{
			"location":    location,
			"temperature": s.intn(30) + 10,
			"condition":   weatherConditions[s.intn(len(weatherConditions))],
			"humidity":    s.intn(40) + 40,
			"wind_speed":  s.intn(20) + 5,
			"timestamp":   s.now().UTC().Format(time.RFC3339),
		}, nil
	case "get_forecast":
		days := make([]map[string]any, 0, 5)
		for i := 0; i < 5; i++ {
			days = append(days, map[string]any{
				"date": s.now().AddDate(0, 0, i).Format("2006-01-02"),
				"high": s.intn(30) + 15,
				// Note: low is generated independently of high, so low > high is possible.
				"low":       s.intn(20) + 5,
				"condition": weatherConditions[s.intn(len(weatherConditions))],
			})
		}
		return map[string]any{
			"location": location,
			"days":     days,
		}, nil
	default:
		return nil, fmt.Errorf("%w: weather tool '%s'", errors.ErrUnknownTool, tool)
	}
}

func (s *Server) mapsPayload(tool string, params map[string]any) (map[string]any, error) {
	switch tool {
	case "search_location":
		query := stringParam(params, "query", "Unknown")
		return map[string]any{
			"query": query,
			"results": []map[string]any{
				{
					"name":    fmt.Sprintf("%s City Center", query),
					"address": fmt.Sprintf("123 Main St, %s", query),
					"coordinates": map[string]any{
						"lat": 40.7128 + s.float64n()*0.1,
						"lng": -74.0060 + s.float64n()*0.1,
					},
					"type": "city",
				},
				{
					"name":    fmt.Sprintf("%s Airport", query),
					"address": fmt.Sprintf("Airport Rd, %s", query),
					"coordinates": map[string]any{
						"lat": 40.7128 + s.float64n()*0.2,
						"lng": -74.0060 + s.float64n()*0.2,
					},
					"type": "airport",
				},
			},
		}, nil
	case "get_coordinates":
		return map[string]any{
			"location": stringParam(params, "location", "Unknown"),
			"coordinates": map[string]any{
				"lat": 40.7128 + s.float64n()*0.5,
				"lng": -74.0060 + s.float64n()*0.5,
			},
			"timezone": "America/New_York",
		}, nil
	default:
		return nil, fmt.Errorf("%w: maps tool '%s'", errors.ErrUnknownTool, tool)
	}
}

func (s *Server) restaurantsPayload(tool string, params map[string]any) (map[string]any, error) {
	switch tool {
	case "search_restaurants":
		location := stringParam(params, "location", "Unknown")
		cuisine := stringParam(params, "cuisine", "Any")

		kitchen := "Local"
		if cuisine != "Any" {
			kitchen = cuisine
		}
		names := []string{
			fmt.Sprintf("The %s Kitchen", kitchen),
			"Bella Vista",
			"Ocean Breeze",
			"Mountain View",
			"City Lights",
		}

		results := make([]map[string]any, 0, len(names))
		for i, name := range names {
			results = append(results, map[string]any{
				"id":          i + 1,
				"name":        name,
				"rating":      fmt.Sprintf("%.1f", s.float64n()*2+3),
				"price_level": []string{"$", "$$", "$$$"}[s.intn(3)],
				"address":     fmt.Sprintf("%d00 Main St, %s", i+1, location),
				"phone":       fmt.Sprintf("+1 (555) %d-%d", s.intn(900)+100, s.intn(9000)+1000),
			})
		}

		return map[string]any{
			"location": location,
			"cuisine":  cuisine,
			"results":  results,
		}, nil
	default:
		return nil, fmt.Errorf("%w: restaurants tool '%s'", errors.ErrUnknownTool, tool)
	}
}

func (s *Server) flightsPayload(tool string, params map[string]any) (map[string]any, error) {
	switch tool {
	case "search_flights":
		airlines := []struct {
			code string
			name string
		}{
			{code: "AA", name: "American Airlines"},
			{code: "UA", name: "United Airlines"},
			{code: "DL", name: "Delta Air Lines"},
		}

		results := make([]map[string]any, 0, len(airlines))
		for _, airline := range airlines {
			results = append(results, map[string]any{
				"flight_number":  fmt.Sprintf("%s%d", airline.code, s.intn(900)+100),
				"airline":        airline.name,
				"departure_time": fmt.Sprintf("%d:%02d AM", s.intn(12)+6, s.intn(60)),
				"arrival_time":   fmt.Sprintf("%d:%02d PM", s.intn(12)+1, s.intn(60)),
				"duration":       fmt.Sprintf("%dh %02dm", s.intn(3)+2, s.intn(60)),
				"price":          s.intn(500) + 200,
				"stops":          s.intn(3),
			})
		}

		return map[string]any{
			"from":    stringParam(params, "from", "Unknown"),
			"to":      stringParam(params, "to", "Unknown"),
			"date":    stringParam(params, "date", s.now().Format("2006-01-02")),
			"results": results,
		}, nil
	default:
		return nil, fmt.Errorf("%w: flights tool '%s'", errors.ErrUnknownTool, tool)
	}
}

func (s *Server) hotelsPayload(tool string, params map[string]any) (map[string]any, error) {
	switch tool {
	case "search_hotels":
		location := stringParam(params, "location", "Unknown")
		names := []string{"Grand Hotel", "City Center Inn", "Beachside Resort", "Mountain Lodge"}
		amenities := []string{"WiFi", "Pool", "Gym", "Restaurant", "Spa"}

		results := make([]map[string]any, 0, len(names))
		for i, name := range names {
			results = append(results, map[string]any{
				"name":            name,
				"rating":          fmt.Sprintf("%.1f", s.float64n()*2+3),
				"price_per_night": s.intn(200) + 100,
				"amenities":       amenities[:s.intn(3)+2],
				"address":         fmt.Sprintf("%d00 Hotel St, %s", i+1, location),
			})
		}

		return map[string]any{
			"location":  location,
			"check_in":  stringParam(params, "check_in", s.now().Format("2006-01-02")),
			"check_out": stringParam(params, "check_out", s.now().AddDate(0, 0, 1).Format("2006-01-02")),
			"results":   results,
		}, nil
	default:
		return nil, fmt.Errorf("%w: hotels tool '%s'", errors.ErrUnknownTool, tool)
	}
}
