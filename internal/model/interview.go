package model

import "time"

// Sentiment classifies the overall tone of an interview report.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// InterviewReport is one candidate's account of an interview process.
// Questions preserve the order they appeared in on the source page.
type InterviewReport struct {
	Organization  string     `json:"organization"`
	Role          string     `json:"role,omitempty"`
	Difficulty    *float64   `json:"difficulty,omitempty"` // typically 1-5
	Sentiment     Sentiment  `json:"sentiment,omitempty"`  // "" when the page gives no signal
	Questions     []string   `json:"questions,omitempty"`
	ProcessNotes  string     `json:"process_notes,omitempty"`
	OfferExtended *bool      `json:"offer_extended,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	SourceID      string     `json:"source_id"`
}
