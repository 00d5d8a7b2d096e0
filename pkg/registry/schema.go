// pkg/registry/schema.go
package registry

// TemplateRegistry is the versioned catalogue of parking-type templates the
// info formatter draws from.
type TemplateRegistry struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Templates   []ParkingTemplate `json:"templates"`
	// DetailSchema is the JSON schema a formatted listing detail must satisfy.
	DetailSchema map[string]interface{} `json:"detailSchema"`
}

// ParkingTemplate describes one parking facility type.
type ParkingTemplate struct {
	ID             string   `json:"id"`
	DisplayName    string   `json:"displayName"`
	Description    string   `json:"description"`
	Keywords       []string `json:"keywords"`
	Rules          []string `json:"rules"`
	Hours          string   `json:"hours"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	HourlyRateMin  float64  `json:"hourlyRateMin"`
	HourlyRateMax  float64  `json:"hourlyRateMax"`
	DailyRateHours float64  `json:"dailyRateHours"` // hourly rate multiplier for the daily cap
	MaxDuration    string   `json:"maxDuration"`
	FreePeriods    []string `json:"freePeriods,omitempty"`
	Covered        bool     `json:"covered"`
}

// Find returns the template with the given id.
func (r *TemplateRegistry) Find(id string) (*ParkingTemplate, bool) {
	for i := range r.Templates {
		if r.Templates[i].ID == id {
			return &r.Templates[i], true
		}
	}
	return nil, false
}
