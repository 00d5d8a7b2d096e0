// internal/models/listing.go
package models

// Listing is a single parking facility record, real or synthetic.
type Listing struct {
	Title      string         `json:"title"`
	Distance   int            `json:"distance"` // meters
	Position   Position       `json:"position"`
	Address    string         `json:"address"`
	Categories []string       `json:"categories,omitempty"`
	IsMock     bool           `json:"is_mock,omitempty"`
	Detail     *ListingDetail `json:"detail,omitempty"`
}

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ListingDetail expands a listing into a human-readable record of rules,
// pricing and amenities.
type ListingDetail struct {
	ParkingType  string   `json:"parking_type"`
	HourlyRate   float64  `json:"hourly_rate"`
	DailyRate    float64  `json:"daily_rate"`
	MaxDuration  string   `json:"max_duration"`
	FreePeriods  []string `json:"free_periods,omitempty"`
	Rules        []string `json:"rules,omitempty"`
	Hours        string   `json:"hours,omitempty"`
	Pros         []string `json:"pros,omitempty"`
	Cons         []string `json:"cons,omitempty"`
	Payment      []string `json:"payment,omitempty"`
	Availability string   `json:"availability,omitempty"` // high / moderate / limited
	Accessible   bool     `json:"accessible"`
	EVCharging   bool     `json:"ev_charging"`
	EVChargers   []string `json:"ev_chargers,omitempty"`
	BlueBadge    string   `json:"blue_badge,omitempty"`
	Free         bool     `json:"free"`
	Covered      bool     `json:"covered"`
}

// ScoredListing wraps a Listing with its 0-100 relevance score.
type ScoredListing struct {
	Listing
	Score int `json:"score"`
}
