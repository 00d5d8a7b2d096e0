// internal/pipeline/score-listings/models.go
package scorelistings

import "parkassist/internal/models"

type Input struct {
	Listings    []models.Listing   `json:"listings"`
	Preferences models.Preferences `json:"preferences"`
	TimePhrase  string             `json:"time_phrase"`
}

type Output struct {
	Scored []models.ScoredListing `json:"scored"`
}
