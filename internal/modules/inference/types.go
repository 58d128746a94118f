package inference

// GenerationParameters are the sampling options sent to text-generation models.
type GenerationParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

// GenerationRequest is the payload for the generation endpoint.
type GenerationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters GenerationParameters `json:"parameters"`
}

// ClassificationRequest is the payload for the sentiment endpoint.
type ClassificationRequest struct {
	Inputs string `json:"inputs"`
}

// DefaultGenerationParameters returns the sampling options used for articles.
func DefaultGenerationParameters() GenerationParameters {
	return GenerationParameters{
		MaxNewTokens:   1024,
		Temperature:    0.7,
		TopP:           0.95,
		DoSample:       true,
		ReturnFullText: false,
	}
}

// Label is a coarse sentiment class.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
)

// SentimentThreshold is the minimum score for a non-neutral label.
const SentimentThreshold = 0.6

// LabelScore is one classification candidate.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
