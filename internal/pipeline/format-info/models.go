// internal/pipeline/format-info/models.go
package formatinfo

import "parkassist/internal/models"

type Input struct {
	Listings []models.ScoredListing `json:"listings"`
}

type Output struct {
	Listings []models.ScoredListing `json:"listings"`
}
