// internal/pipeline/generate-fallback/models.go
package generatefallback

import "parkassist/internal/models"

type Input struct {
	Location    string             `json:"location"`
	Preferences models.Preferences `json:"preferences"`
}

type Output struct {
	Listings []models.Listing `json:"listings"`
}
