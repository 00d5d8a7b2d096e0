// internal/pipeline/classify-intent/models.go
package classifyintent

type Input struct {
	Message string `json:"message"`
}

type Output struct {
	Intent     string         `json:"intent"`
	Confidence float64        `json:"confidence"`
	Scores     map[string]int `json:"scores,omitempty"`
}
