// internal/clients/places/models.go
package places

// apiResponse mirrors the provider's discover payload.
type apiResponse struct {
	Items []apiItem `json:"items"`
}

type apiItem struct {
	Title    string `json:"title"`
	Distance int    `json:"distance"`
	Address  struct {
		Label string `json:"label"`
	} `json:"address"`
	Position struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"position"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
}
