package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/statuswatch/backend/internal/model"
)

// TextGenerator is the external generative-text service.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type FeedbackService struct {
	gen TextGenerator
}

func NewFeedbackService(gen TextGenerator) *FeedbackService {
	return &FeedbackService{gen: gen}
}

const feedbackPromptTemplate = `Analyze this system feedback and determine if the issues described are RESOLVED or UNRESOLVED.

Rules for determining status:
- RESOLVED: Feedback indicates problems have been fixed, solutions implemented, or normal operation restored
- UNRESOLVED: Feedback describes ongoing issues, problems requiring attention, or pending actions

If there's any uncertainty or ongoing issues mentioned, mark as UNRESOLVED.

Feedback to analyze:
%s

Respond in this exact format:
STATUS: [RESOLVED/UNRESOLVED]
REASONING: [Brief explanation of status determination]
KEY POINTS:
- [point 1]
- [point 2]
etc.`

// Summarize turns free-text feedback into bullet points plus a resolution
// status. Empty input returns immediately with no external call. A failed
// generation call degrades to the raw feedback as the sole point; it is not
// an error to the caller.
func (s *FeedbackService) Summarize(ctx context.Context, feedback string) model.FeedbackSummary {
	if strings.TrimSpace(feedback) == "" {
		return model.FeedbackSummary{Points: []string{}, Status: model.IssueUnresolved}
	}

	content, err := s.gen.GenerateText(ctx, fmt.Sprintf(feedbackPromptTemplate, feedback))
	if err != nil {
		return model.FeedbackSummary{Points: []string{feedback}, Status: model.IssueUnresolved}
	}

	return parseFeedbackResponse(content)
}

// parseFeedbackResponse extracts STATUS, KEY POINTS, and REASONING from the
// generated text. Every malformed shape has a defined outcome: status is
// RESOLVED only on an exact case-insensitive match, and a response with no
// bullet points falls back to the REASONING line as the sole point.
func parseFeedbackResponse(content string) model.FeedbackSummary {
	status := model.IssueUnresolved
	points := make([]string, 0)
	var reasoning string
	inKeyPoints := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "STATUS:"):
			value := strings.TrimSpace(strings.TrimPrefix(trimmed, "STATUS:"))
			if strings.EqualFold(value, string(model.IssueResolved)) {
				status = model.IssueResolved
			}
		case strings.HasPrefix(trimmed, "REASONING:"):
			reasoning = strings.TrimSpace(strings.TrimPrefix(trimmed, "REASONING:"))
		case strings.Contains(trimmed, "KEY POINTS:"):
			inKeyPoints = true
		case inKeyPoints && strings.HasPrefix(trimmed, "-"):
			point := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			if point != "" {
				points = append(points, point)
			}
		}
	}

	if len(points) == 0 && reasoning != "" {
		points = append(points, reasoning)
	}

	return model.FeedbackSummary{Points: points, Status: status}
}
