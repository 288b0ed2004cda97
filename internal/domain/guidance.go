package domain

// Guidance is the AI-generated advice served to a parent about one child.
// Both lists are always non-empty: when the completion service fails, the
// generator substitutes a fixed generic pair instead of erroring.
type Guidance struct {
	Recommendations   []string `json:"recommendations"`
	EncouragementTips []string `json:"encouragementTips"`
}
