package service

import (
	"context"
	"errors"
	"testing"

	"github.com/statuswatch/backend/internal/model"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestSummarizeEmptyFeedbackSkipsCall(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewFeedbackService(gen)

	got := svc.Summarize(context.Background(), "   ")
	if len(got.Points) != 0 || got.Status != model.IssueUnresolved {
		t.Fatalf("expected ([], UNRESOLVED), got %+v", got)
	}
	if gen.calls != 0 {
		t.Fatalf("expected zero external calls, got %d", gen.calls)
	}
}

func TestSummarizeParsesStructuredResponse(t *testing.T) {
	gen := &fakeGenerator{response: `STATUS: RESOLVED
REASONING: The fix was deployed and metrics returned to normal.
KEY POINTS:
- Database connection pool was exhausted
- Pool size increased and service restarted
- Monitoring confirms normal operation`}
	svc := NewFeedbackService(gen)

	got := svc.Summarize(context.Background(), "we fixed the db pool issue")
	if got.Status != model.IssueResolved {
		t.Fatalf("expected RESOLVED, got %s", got.Status)
	}
	if len(got.Points) != 3 {
		t.Fatalf("expected 3 points, got %d: %v", len(got.Points), got.Points)
	}
	if got.Points[0] != "Database connection pool was exhausted" {
		t.Fatalf("unexpected first point: %q", got.Points[0])
	}
}

func TestSummarizeLowercaseResolvedAccepted(t *testing.T) {
	gen := &fakeGenerator{response: "STATUS: resolved\nKEY POINTS:\n- all good"}
	svc := NewFeedbackService(gen)

	got := svc.Summarize(context.Background(), "feedback")
	if got.Status != model.IssueResolved {
		t.Fatalf("expected case-insensitive RESOLVED, got %s", got.Status)
	}
}

func TestSummarizeAmbiguousStatusDefaultsUnresolved(t *testing.T) {
	cases := []string{
		"STATUS: PROBABLY RESOLVED\nKEY POINTS:\n- something",
		"KEY POINTS:\n- no status line at all",
		"complete nonsense with no structure",
	}
	for _, response := range cases {
		svc := NewFeedbackService(&fakeGenerator{response: response})
		got := svc.Summarize(context.Background(), "feedback")
		if got.Status != model.IssueUnresolved {
			t.Fatalf("response %q: expected UNRESOLVED, got %s", response, got.Status)
		}
	}
}

func TestSummarizeFallsBackToReasoning(t *testing.T) {
	gen := &fakeGenerator{response: `STATUS: UNRESOLVED
REASONING: Issue is still under investigation.
KEY POINTS:`}
	svc := NewFeedbackService(gen)

	got := svc.Summarize(context.Background(), "feedback")
	if len(got.Points) != 1 || got.Points[0] != "Issue is still under investigation." {
		t.Fatalf("expected reasoning fallback, got %v", got.Points)
	}
}

func TestSummarizeGenerationFailureDegrades(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewFeedbackService(gen)

	feedback := "latency is still spiking every hour"
	got := svc.Summarize(context.Background(), feedback)
	if got.Status != model.IssueUnresolved {
		t.Fatalf("expected UNRESOLVED on failure, got %s", got.Status)
	}
	if len(got.Points) != 1 || got.Points[0] != feedback {
		t.Fatalf("expected raw feedback as sole point, got %v", got.Points)
	}
}
