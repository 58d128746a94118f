package content

import (
	"html/template"
	"time"
)

const (
	msgModelLoading          = "The model is still loading. Please try again in a few seconds."
	msgGenerationFailedFmt   = "Error generating content: %s"
	msgSentimentFallback     = "Unable to analyze sentiment"
	msgAnalysisFailed        = "Error analyzing content"
	sentimentInputMaxRunes   = 512
	sentimentTruncatedSuffix = "..."
)

// GenerateRequest is the body of POST /generate/.
type GenerateRequest struct {
	Topic *string `json:"topic" binding:"required"`
}

type GenerateResponse struct {
	GeneratedText string `json:"generated_text"`
	Success       bool   `json:"success"`
}

// AnalyzeRequest is the body of POST /analyze/.
type AnalyzeRequest struct {
	Content *string `json:"content" binding:"required"`
}

type AnalyzeResponse struct {
	Readability string `json:"readability"`
	Sentiment   string `json:"sentiment"`
	Success     bool   `json:"success"`
}

// Analysis is the outcome of one analysis operation.
type Analysis struct {
	Readability string
	Sentiment   string
}

// Article is a stored generation prepared for the index page.
type Article struct {
	ID      string
	Topic   string
	HTML    template.HTML
	Created time.Time
}
