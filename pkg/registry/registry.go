// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"os"
)

// Template ids. The formatter's title classifier maps keyword hits onto
// these three types.
const (
	TypeMultiStorey = "multi_storey_car_park"
	TypeSurface     = "surface_car_park"
	TypeOnStreet    = "on_street"
)

func LoadRegistry(path string) (*TemplateRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TemplateRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Default returns the built-in registry used when no override file is
// configured.
func Default() *TemplateRegistry {
	return &TemplateRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-07-01",
		Templates: []ParkingTemplate{
			{
				ID:          TypeMultiStorey,
				DisplayName: "Multi-storey car park",
				Description: "Covered multi-level facility with barrier entry",
				Keywords:    []string{"garage", "multi", "level", "storey", "ncp"},
				Rules: []string{
					"Pay on foot before returning to your vehicle",
					"Keep your ticket with you, not in the car",
					"Height limit typically 1.9m-2.1m",
				},
				Hours: "24 hours",
				Pros: []string{
					"Covered and weather-protected",
					"CCTV and staffed during the day",
					"Usually has lifts and step-free access",
				},
				Cons: []string{
					"Pricier than street parking",
					"Tight ramps and spaces in older buildings",
				},
				HourlyRateMin:  2.0,
				HourlyRateMax:  5.0,
				DailyRateHours: 6,
				MaxDuration:    "no limit",
				Covered:        true,
			},
			{
				ID:          TypeSurface,
				DisplayName: "Surface car park",
				Description: "Open-air marked lot, pay and display or ANPR",
				Keywords:    []string{"lot", "surface", "ground", "retail", "park and ride"},
				Rules: []string{
					"Pay and display, or ANPR billing by plate",
					"Park within marked bays only",
					"Check the maximum stay on entry signage",
				},
				Hours: "6:00-22:00 typical",
				Pros: []string{
					"Cheaper than multi-storey",
					"No height restriction",
					"Easy access for larger vehicles",
				},
				Cons: []string{
					"No weather protection",
					"Can fill early near shopping areas",
				},
				HourlyRateMin:  1.0,
				HourlyRateMax:  4.0,
				DailyRateHours: 5,
				MaxDuration:    "often 4-12 hours",
				FreePeriods:    []string{"some offer 30 minutes free"},
			},
			{
				ID:          TypeOnStreet,
				DisplayName: "On-street parking",
				Description: "Metered bays and pay-by-phone street parking",
				Keywords:    []string{"street", "meter", "bay", "roadside"},
				Rules: []string{
					"Check signage for controlled hours",
					"Single yellow lines: no parking during controlled hours",
					"Double yellow lines: no parking at any time",
					"Maximum stay commonly 2-4 hours",
				},
				Hours: "controlled 8:00-18:30 Mon-Sat typical",
				Pros: []string{
					"Closest to your destination",
					"Often free evenings and Sundays",
				},
				Cons: []string{
					"Strict wardens and time limits",
					"Scarce at peak times",
				},
				HourlyRateMin:  1.5,
				HourlyRateMax:  3.5,
				DailyRateHours: 4,
				MaxDuration:    "2-4 hours typical",
				FreePeriods:    []string{"usually free after 18:30 and Sundays"},
			},
		},
		DetailSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"parking_type": map[string]interface{}{"type": "string", "minLength": 1},
				"hourly_rate":  map[string]interface{}{"type": "number", "minimum": 0},
				"daily_rate":   map[string]interface{}{"type": "number", "minimum": 0},
				"max_duration": map[string]interface{}{"type": "string"},
				"availability": map[string]interface{}{
					"type": "string",
					"enum": []interface{}{"high", "moderate", "limited"},
				},
			},
			"required": []interface{}{"parking_type", "hourly_rate"},
		},
	}
}
