package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/statuswatch/backend/internal/model"
)

var ErrInvalidChatRequest = errors.New("invalid chat request")

// ReportReader supplies historical context for Q&A.
type ReportReader interface {
	RecentReports(ctx context.Context, limit int32) ([]model.Report, error)
	SearchSimilarReports(ctx context.Context, vector []float32, limit int32) ([]model.Report, error)
}

type ChatService struct {
	gen         TextGenerator
	reports     ReportReader
	embedClient EmbeddingClient // nil disables semantic retrieval
}

func NewChatService(gen TextGenerator, reports ReportReader) *ChatService {
	return &ChatService{gen: gen, reports: reports}
}

func (s *ChatService) WithEmbeddings(client EmbeddingClient) *ChatService {
	s.embedClient = client
	return s
}

const chatContextHeader = `You are a helpful system monitoring assistant. Here is the available system information:

%s

The system is considered abnormal if any of these conditions are met:
- CPU Utilization >= 80%%
- Memory Usage >= 80%%
- Latency >= 200 ms
- Packet Loss >= 1%%
- Error Rates >= 5%%
- Transmission Delay >= 100 ms
- Network Availability < 99.9%%

When analyzing trends or comparing data, please consider both historical and current data if available.
Please provide a natural, conversational response to this question: %s

If asked about trends or patterns, analyze the data across different time periods.
If asked about specific metrics, provide relevant comparisons when possible.
If asked about system health, consider both current and historical states to provide context.`

// Ask answers an operator question over the chosen data source. Historical
// context prefers semantic retrieval over report embeddings and falls back
// to the most recent reports.
func (s *ChatService) Ask(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidChatRequest)
	}

	source := req.Source
	if source == "" {
		source = model.ChatSourceAll
	}

	var sections []string

	if source == model.ChatSourceCurrent || source == model.ChatSourceAll {
		if req.Session != nil {
			sections = append(sections, formatSessionContext(req.Session))
		} else if source == model.ChatSourceCurrent {
			return nil, fmt.Errorf("%w: session data is required for source=current", ErrInvalidChatRequest)
		}
	}

	if source == model.ChatSourceHistorical || source == model.ChatSourceAll {
		reports, err := s.loadHistoricalContext(ctx, question)
		if err != nil {
			return nil, err
		}
		if len(reports) == 0 && source == model.ChatSourceHistorical {
			return nil, fmt.Errorf("%w: no historical reports available", ErrInvalidChatRequest)
		}
		if len(reports) > 0 {
			sections = append(sections, formatHistoricalContext(reports))
		}
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no context available for source=%s", ErrInvalidChatRequest, source)
	}

	prompt := fmt.Sprintf(chatContextHeader, strings.Join(sections, "\n\n"), question)
	answer, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	return &model.ChatResponse{
		Status:         "success",
		Answer:         strings.TrimSpace(strings.ReplaceAll(answer, "*", "")),
		ConversationID: conversationID,
	}, nil
}

func (s *ChatService) loadHistoricalContext(ctx context.Context, question string) ([]model.Report, error) {
	if s.embedClient != nil {
		if vector, _, err := s.embedClient.EmbedText(ctx, question); err == nil {
			if reports, err := s.reports.SearchSimilarReports(ctx, vector, 5); err == nil && len(reports) > 0 {
				return reports, nil
			}
		}
	}
	return s.reports.RecentReports(ctx, 20)
}

func formatSessionContext(session *model.SessionContext) string {
	snap := session.Snapshot
	return fmt.Sprintf(`Current Session Data:
Time: %s
System Status: %s
CPU Utilization: %g%%
Memory Usage: %g%%
Bandwidth Utilization: %g%%
Network Traffic Volume: %g Mbps
Error Rates: %g
Network Availability: %g%%`,
		time.Now().Format("2006-01-02 15:04:05"),
		session.Status,
		snap.CPUUtilization,
		snap.MemoryUsage,
		snap.BandwidthUtilization,
		snap.NetworkTrafficVolume,
		snap.ErrorRates,
		snap.NetworkAvailability,
	)
}

func formatHistoricalContext(reports []model.Report) string {
	var sb strings.Builder
	sb.WriteString("Historical Reports:")
	for i, r := range reports {
		fmt.Fprintf(&sb, `
Report %d - %s:
System State: %s
CPU Utilization: %g%%
Memory Usage: %g%%
Bandwidth Utilization: %g%%
Network Traffic Volume: %g Mbps
Error Rates: %g
Network Availability: %g%%`,
			i+1,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.SystemState,
			r.Snapshot.CPUUtilization,
			r.Snapshot.MemoryUsage,
			r.Snapshot.BandwidthUtilization,
			r.Snapshot.NetworkTrafficVolume,
			r.Snapshot.ErrorRates,
			r.Snapshot.NetworkAvailability,
		)
	}
	return sb.String()
}
