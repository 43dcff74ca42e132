package domain

// CSATRating captures the satisfaction-survey outcome.
type CSATRating string

const (
	RatingPositive CSATRating = "POSITIVE"
	RatingNeutral  CSATRating = "NEUTRAL"
	RatingNegative CSATRating = "NEGATIVE"
)

// ResolvedBy records which side answered the user last.
type ResolvedBy string

const (
	ResolvedByAI       ResolvedBy = "AI"
	ResolvedByOperator ResolvedBy = "OPERATOR"
)

// CSAT is forwarded to the external submission endpoint and never persisted.
type CSAT struct {
	Rating     CSATRating `json:"rating"`
	ResolvedBy ResolvedBy `json:"resolvedBy"`
}
