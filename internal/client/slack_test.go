package client

import (
	"testing"
	"time"

	"github.com/statuswatch/backend/internal/config"
	"github.com/statuswatch/backend/internal/model"
	"github.com/statuswatch/backend/internal/template"
)

func TestBuildCriticalReportMessage(t *testing.T) {
	report := &model.Report{
		ID:          42,
		Username:    "operator1",
		CreatedAt:   time.Unix(1700000000, 0),
		SystemState: model.StatusCritical,
		IssueStatus: model.IssueUnresolved,
		Snapshot: model.MetricSnapshot{
			CPUUtilization:      95,
			MemoryUsage:         91,
			ErrorRates:          12,
			NetworkAvailability: 97,
		},
	}

	data := template.ReportDataFromModel(report)
	headline := template.RenderBody(defaultMessageTemplate, &data)
	msg := buildCriticalReportMessage("C123", headline, report)
	if msg.Channel != "C123" {
		t.Fatalf("expected channel C123, got %s", msg.Channel)
	}
	if msg.Text != ":rotating_light: CRITICAL status report #42 by operator1" {
		t.Fatalf("unexpected headline: %s", msg.Text)
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("expected one attachment, got %d", len(msg.Attachments))
	}
	att := msg.Attachments[0]
	if att.Color != "#dc3545" {
		t.Fatalf("expected critical color, got %s", att.Color)
	}
	if att.Ts != 1700000000 {
		t.Fatalf("expected report timestamp, got %d", att.Ts)
	}
	if len(att.Fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(att.Fields))
	}
}

func TestNotifySkippedWhenUnconfigured(t *testing.T) {
	c := NewSlackClient(config.SlackConfig{})
	if c.IsConfigured() {
		t.Fatal("expected unconfigured client")
	}
	if err := c.NotifyCriticalReport(&model.Report{}); err != nil {
		t.Fatalf("unconfigured notify should be a no-op, got %v", err)
	}
}
