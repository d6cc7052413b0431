// Package template renders notification text templates.
//
// Supported variables:
//
//	{{report.id}}, {{report.username}}, {{report.state}},
//	{{report.issue_status}}, {{report.created_at}}
//
//	{{snapshot.cpu}}, {{snapshot.memory}}, {{snapshot.error_rates}},
//	{{snapshot.availability}}
package template

import (
	"strconv"
	"strings"
	"time"

	"github.com/statuswatch/backend/internal/model"
)

// ReportData holds the values a notification template can reference.
type ReportData struct {
	ID          int64
	Username    string
	State       string
	IssueStatus string
	CreatedAt   time.Time
	Snapshot    model.MetricSnapshot
}

// ReportDataFromModel builds ReportData from a stored report.
func ReportDataFromModel(r *model.Report) ReportData {
	return ReportData{
		ID:          r.ID,
		Username:    r.Username,
		State:       string(r.SystemState),
		IssueStatus: string(r.IssueStatus),
		CreatedAt:   r.CreatedAt,
		Snapshot:    r.Snapshot,
	}
}

// RenderBody replaces template variables in body with the report's values.
// Variables of a nil report render as empty strings.
func RenderBody(body string, report *ReportData) string {
	pairs := make([]string, 0, 18)

	if report != nil {
		pairs = append(pairs,
			"{{report.id}}", strconv.FormatInt(report.ID, 10),
			"{{report.username}}", report.Username,
			"{{report.state}}", report.State,
			"{{report.issue_status}}", report.IssueStatus,
			"{{report.created_at}}", report.CreatedAt.Format(time.RFC3339),
			"{{snapshot.cpu}}", formatMetric(report.Snapshot.CPUUtilization),
			"{{snapshot.memory}}", formatMetric(report.Snapshot.MemoryUsage),
			"{{snapshot.error_rates}}", formatMetric(report.Snapshot.ErrorRates),
			"{{snapshot.availability}}", formatMetric(report.Snapshot.NetworkAvailability),
		)
	} else {
		pairs = append(pairs,
			"{{report.id}}", "",
			"{{report.username}}", "",
			"{{report.state}}", "",
			"{{report.issue_status}}", "",
			"{{report.created_at}}", "",
			"{{snapshot.cpu}}", "",
			"{{snapshot.memory}}", "",
			"{{snapshot.error_rates}}", "",
			"{{snapshot.availability}}", "",
		)
	}

	return strings.NewReplacer(pairs...).Replace(body)
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
