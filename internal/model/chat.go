package model

// Chat data sources. "current" answers over the snapshot the client sends
// along, "historical" over stored reports, "all" over both.
const (
	ChatSourceCurrent    = "current"
	ChatSourceHistorical = "historical"
	ChatSourceAll        = "all"
)

// SessionContext is the explicit classify-step payload a client carries
// into a chat request instead of server-side session state.
type SessionContext struct {
	Snapshot MetricSnapshot `json:"snapshot"`
	Status   SystemStatus   `json:"status"`
}

type ChatRequest struct {
	Question       string          `json:"question" binding:"required"`
	Source         string          `json:"source"`
	Session        *SessionContext `json:"session,omitempty"`
	ConversationID string          `json:"conversation_id,omitempty"`
}

type ChatResponse struct {
	Status         string `json:"status"`
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}
