package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/statuswatch/backend/internal/db"
	"github.com/statuswatch/backend/internal/model"
)

var ErrInvalidReport = errors.New("invalid report")

// ReportStore is the persistence surface the report flow needs.
type ReportStore interface {
	InsertReport(ctx context.Context, r *model.Report) (*model.Report, error)
	GetReport(ctx context.Context, id int64) (*model.Report, error)
	GetVote(ctx context.Context, username string, reportID int64) (model.VoteState, error)
	ListReports(ctx context.Context, viewer string, filter model.ReportFilter) ([]db.ReportWithVote, error)
	DeleteReport(ctx context.Context, id int64) error
}

// ReportEmbedder stores and removes report embeddings for Q&A retrieval.
type ReportEmbedder interface {
	InsertReportEmbedding(ctx context.Context, reportID int64, embedModel string, vector []float32) (int64, error)
	DeleteReportEmbedding(ctx context.Context, reportID int64) error
}

// EmbeddingClient turns text into a vector.
type EmbeddingClient interface {
	EmbedText(ctx context.Context, text string) ([]float32, string, error)
}

// ReportNotifier announces notable reports out of band.
type ReportNotifier interface {
	NotifyCriticalReport(report *model.Report) error
}

type ReportService struct {
	store    ReportStore
	feedback *FeedbackService

	// Optional collaborators; nil disables the feature.
	embedStore  ReportEmbedder
	embedClient EmbeddingClient
	notifier    ReportNotifier
}

func NewReportService(store ReportStore, feedback *FeedbackService) *ReportService {
	return &ReportService{store: store, feedback: feedback}
}

func (s *ReportService) WithEmbeddings(store ReportEmbedder, client EmbeddingClient) *ReportService {
	s.embedStore = store
	s.embedClient = client
	return s
}

func (s *ReportService) WithNotifier(notifier ReportNotifier) *ReportService {
	s.notifier = notifier
	return s
}

// ComposeReport renders the human-readable status report for a classified
// snapshot: metric sections, threshold diagnosis, and remediation actions.
func ComposeReport(snap model.MetricSnapshot, status model.SystemStatus, now time.Time) string {
	findings := EvaluateThresholds(snap)

	diagnosis := noIssuesDiagnosis
	if len(findings) > 0 {
		sentences := make([]string, 0, len(findings))
		for _, f := range findings {
			sentences = append(sentences, f.Diagnosis)
		}
		diagnosis = strings.Join(sentences, "\n- ")
	}

	remediation := noActionsRemediation
	if len(findings) > 0 {
		blocks := make([]string, 0, len(findings))
		for _, f := range findings {
			blocks = append(blocks, "- "+strings.Join(f.Remediation, "\n- "))
		}
		remediation = strings.Join(blocks, "\n\n")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "System Status Report - %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Overall Status: %s\n\n", status)

	sb.WriteString("Network Performance Metrics:\n")
	fmt.Fprintf(&sb, "- Bandwidth Utilization: %g%%\n", snap.BandwidthUtilization)
	fmt.Fprintf(&sb, "- Throughput: %g Mbps\n", snap.Throughput)
	fmt.Fprintf(&sb, "- Latency: %g ms\n", snap.Latency)
	fmt.Fprintf(&sb, "- Jitter: %g ms\n", snap.Jitter)
	fmt.Fprintf(&sb, "- Packet Loss: %g%%\n", snap.PacketLoss)
	fmt.Fprintf(&sb, "- Network Availability: %g%%\n\n", snap.NetworkAvailability)

	sb.WriteString("System Resource Metrics:\n")
	fmt.Fprintf(&sb, "- CPU Utilization: %g%%\n", snap.CPUUtilization)
	fmt.Fprintf(&sb, "- Memory Usage: %g%%\n", snap.MemoryUsage)
	fmt.Fprintf(&sb, "- Grid Voltage: %g V\n", snap.GridVoltage)
	fmt.Fprintf(&sb, "- Cooling Temperature: %g°C\n\n", snap.CoolingTemperature)

	sb.WriteString("Network Traffic Analysis:\n")
	fmt.Fprintf(&sb, "- Network Traffic Volume: %g Mbps\n", snap.NetworkTrafficVolume)
	fmt.Fprintf(&sb, "- Error Rates: %g\n", snap.ErrorRates)
	fmt.Fprintf(&sb, "- Transmission Delay: %g ms\n", snap.TransmissionDelay)
	fmt.Fprintf(&sb, "- Connection Establishment/Termination Times: %g ms\n\n", snap.ConnectionTimes)

	fmt.Fprintf(&sb, "System Diagnosis:\n- %s\n\n", diagnosis)
	fmt.Fprintf(&sb, "Recommended Actions:\n%s\n", remediation)

	return sb.String()
}

// Save persists a report: feedback is summarized first, then the report is
// inserted; embedding and notification afterwards are best-effort.
func (s *ReportService) Save(ctx context.Context, username string, req model.SaveReportRequest) (*model.Report, error) {
	if req.Snapshot == nil {
		return nil, fmt.Errorf("%w: snapshot is required", ErrInvalidReport)
	}
	if !model.ValidSystemStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidReport, req.Status)
	}
	if strings.TrimSpace(req.ReportText) == "" {
		return nil, fmt.Errorf("%w: report text is required", ErrInvalidReport)
	}

	summary := s.feedback.Summarize(ctx, req.Feedback)

	report := &model.Report{
		Username:        username,
		Snapshot:        *req.Snapshot,
		SystemState:     req.Status,
		ReportText:      req.ReportText,
		Feedback:        req.Feedback,
		FeedbackSummary: summary.Points,
		IssueStatus:     summary.Status,
	}

	saved, err := s.store.InsertReport(ctx, report)
	if err != nil {
		return nil, err
	}

	if s.embedStore != nil && s.embedClient != nil {
		if vector, embedModel, err := s.embedClient.EmbedText(ctx, saved.ReportText); err != nil {
			log.Printf("report %d: embedding skipped: %v", saved.ID, err)
		} else if _, err := s.embedStore.InsertReportEmbedding(ctx, saved.ID, embedModel, vector); err != nil {
			log.Printf("report %d: failed to store embedding: %v", saved.ID, err)
		}
	}

	if s.notifier != nil && saved.SystemState == model.StatusCritical {
		if err := s.notifier.NotifyCriticalReport(saved); err != nil {
			log.Printf("report %d: slack notification failed: %v", saved.ID, err)
		}
	}

	return saved, nil
}

// Get returns one report annotated with display-time trust data and the
// viewer's own vote.
func (s *ReportService) Get(ctx context.Context, viewer string, id int64) (*model.ReportView, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	myVote, err := s.store.GetVote(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	score, tier := ScoreTrust(report.Upvotes, report.Downvotes)
	return &model.ReportView{
		Report:       *report,
		TotalVotes:   report.Upvotes + report.Downvotes,
		TrustScore:   score,
		TrustTier:    string(tier),
		TrustMessage: TrustMessage(tier),
		MyVote:       myVote,
	}, nil
}

// List returns stored reports annotated with display-time trust data and
// the viewer's own vote.
func (s *ReportService) List(ctx context.Context, viewer string, filter model.ReportFilter) ([]model.ReportView, error) {
	records, err := s.store.ListReports(ctx, viewer, filter)
	if err != nil {
		return nil, err
	}

	views := make([]model.ReportView, 0, len(records))
	for _, rec := range records {
		score, tier := ScoreTrust(rec.Upvotes, rec.Downvotes)
		views = append(views, model.ReportView{
			Report:       rec.Report,
			TotalVotes:   rec.Upvotes + rec.Downvotes,
			TrustScore:   score,
			TrustTier:    string(tier),
			TrustMessage: TrustMessage(tier),
			MyVote:       rec.MyVote,
		})
	}
	return views, nil
}

// Delete removes a report and its votes. Any authenticated user may delete
// any report, not only the author.
func (s *ReportService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteReport(ctx, id); err != nil {
		if errors.Is(err, db.ErrReportNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	if s.embedStore != nil {
		if err := s.embedStore.DeleteReportEmbedding(ctx, id); err != nil {
			log.Printf("report %d: failed to delete embedding: %v", id, err)
		}
	}
	return nil
}
