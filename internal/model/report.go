package model

import "time"

// IssueStatus is derived from operator feedback: whether the issues the
// report describes are resolved.
type IssueStatus string

const (
	IssueResolved   IssueStatus = "RESOLVED"
	IssueUnresolved IssueStatus = "UNRESOLVED"
)

// Report is one persisted status report. Vote counters are maintained
// incrementally by the ledger; they always equal the number of vote rows
// of each direction referencing the report.
type Report struct {
	ID              int64          `json:"id"`
	Username        string         `json:"username"`
	CreatedAt       time.Time      `json:"created_at"`
	Snapshot        MetricSnapshot `json:"snapshot"`
	SystemState     SystemStatus   `json:"system_state"`
	ReportText      string         `json:"report_text"`
	Feedback        string         `json:"feedback,omitempty"`
	FeedbackSummary []string       `json:"feedback_summary,omitempty"`
	IssueStatus     IssueStatus    `json:"issue_status"`
	Upvotes         int64          `json:"upvotes"`
	Downvotes       int64          `json:"downvotes"`
}

// ReportView is a report annotated with display-time trust data and the
// viewer's own vote.
type ReportView struct {
	Report
	TotalVotes   int64     `json:"total_votes"`
	TrustScore   float64   `json:"trust_score"`
	TrustTier    string    `json:"trust_tier"`
	TrustMessage string    `json:"trust_message,omitempty"`
	MyVote       VoteState `json:"my_vote"`
}

// ReportFilter narrows the report listing.
type ReportFilter struct {
	Search        string
	SystemStates  []SystemStatus
	IssueStatuses []IssueStatus
}

// ThresholdFinding is one triggered diagnosis with its remediation block.
type ThresholdFinding struct {
	Metric      string   `json:"metric"`
	Diagnosis   string   `json:"diagnosis"`
	Remediation []string `json:"remediation"`
}

// ClassifyRequest carries a snapshot to the classifier. The snapshot is a
// pointer so a missing body object fails binding instead of defaulting to
// all-zero metrics.
type ClassifyRequest struct {
	Snapshot *MetricSnapshot `json:"snapshot" binding:"required"`
}

// ClassifyResponse echoes the snapshot context the client needs for the
// save step, plus the composed draft report.
type ClassifyResponse struct {
	Status     SystemStatus       `json:"status"`
	Snapshot   MetricSnapshot     `json:"snapshot"`
	ReportText string             `json:"report_text"`
	Findings   []ThresholdFinding `json:"findings"`
}

// SaveReportRequest persists a (possibly edited) report with optional
// free-text feedback.
type SaveReportRequest struct {
	Snapshot   *MetricSnapshot `json:"snapshot" binding:"required"`
	Status     SystemStatus    `json:"status" binding:"required"`
	ReportText string          `json:"report_text" binding:"required"`
	Feedback   string          `json:"feedback"`
}

// SaveReportResponse returns the stored report and the feedback analysis
// shown to the operator right after saving.
type SaveReportResponse struct {
	Status string  `json:"status"`
	Report *Report `json:"report"`
}

// DeleteReportResponse acknowledges a deletion.
type DeleteReportResponse struct {
	Status string `json:"status"`
}
