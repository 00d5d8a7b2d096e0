// internal/clients/geocode/models.go
package geocode

// Result is the first usable geocoding hit.
type Result struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// apiResponse mirrors the provider's geocode payload.
type apiResponse struct {
	Items []apiItem `json:"items"`
}

type apiItem struct {
	Title   string `json:"title"`
	Address struct {
		Label string `json:"label"`
	} `json:"address"`
	Position struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"position"`
}
