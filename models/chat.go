package models

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	AccountID string `json:"accountId"`      // unique account identifier; generated when empty
	Text      string `json:"text"`           // the user's message
	Flow      string `json:"flow,omitempty"` // "concierge" (default) or "booking"
}

// RecommendedItem is one ranked pick with its justification strings.
type RecommendedItem struct {
	Restaurant Restaurant `json:"restaurant"`
	Score      float64    `json:"score"`
	Reasons    []string   `json:"reasons,omitempty"`
}

// ChatResponse is what the chat handler returns per turn.
type ChatResponse struct {
	AccountID       string            `json:"accountId"`
	Reply           string            `json:"reply"`
	State           DialogueState     `json:"state"`
	Mode            string            `json:"mode,omitempty"`
	Recommendations []RecommendedItem `json:"recommendations,omitempty"`
	Trace           DecisionTrace     `json:"trace"`
}
