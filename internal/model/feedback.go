package model

// FeedbackSummary is the structured result of summarizing free-text
// operator feedback. Status defaults to UNRESOLVED whenever the generated
// response is ambiguous, missing, or the generation call failed.
type FeedbackSummary struct {
	Points []string    `json:"points"`
	Status IssueStatus `json:"status"`
}
