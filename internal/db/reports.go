package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/statuswatch/backend/internal/model"
)

func (db *Postgres) EnsureReportSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS reports (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			cpu_utilization DOUBLE PRECISION NOT NULL,
			memory_usage DOUBLE PRECISION NOT NULL,
			bandwidth_utilization DOUBLE PRECISION NOT NULL,
			throughput DOUBLE PRECISION NOT NULL,
			latency DOUBLE PRECISION NOT NULL,
			jitter DOUBLE PRECISION NOT NULL,
			packet_loss DOUBLE PRECISION NOT NULL,
			error_rates DOUBLE PRECISION NOT NULL,
			connection_times DOUBLE PRECISION NOT NULL,
			network_availability DOUBLE PRECISION NOT NULL,
			transmission_delay DOUBLE PRECISION NOT NULL,
			grid_voltage DOUBLE PRECISION NOT NULL,
			cooling_temperature DOUBLE PRECISION NOT NULL,
			network_traffic_volume DOUBLE PRECISION NOT NULL,
			system_state TEXT NOT NULL CHECK (system_state IN ('NORMAL', 'WARNING', 'CRITICAL')),
			report_text TEXT NOT NULL,
			feedback TEXT NOT NULL DEFAULT '',
			feedback_summary TEXT NOT NULL DEFAULT '',
			issue_status TEXT NOT NULL DEFAULT 'UNRESOLVED' CHECK (issue_status IN ('RESOLVED', 'UNRESOLVED')),
			upvotes BIGINT NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
			downvotes BIGINT NOT NULL DEFAULT 0 CHECK (downvotes >= 0)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS report_votes (
			username TEXT NOT NULL,
			report_id BIGINT NOT NULL,
			vote_type TEXT NOT NULL CHECK (vote_type IN ('upvote', 'downvote')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (username, report_id)
		)
		`,
		`CREATE INDEX IF NOT EXISTS report_votes_report_idx ON report_votes(report_id)`,
		`CREATE INDEX IF NOT EXISTS reports_created_at_idx ON reports(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to ensure report schema: %w", err)
		}
	}
	return nil
}

const reportColumns = `
	id, username, created_at,
	cpu_utilization, memory_usage, bandwidth_utilization, throughput,
	latency, jitter, packet_loss, error_rates, connection_times,
	network_availability, transmission_delay, grid_voltage,
	cooling_temperature, network_traffic_volume,
	system_state, report_text, feedback, feedback_summary, issue_status,
	upvotes, downvotes`

type reportScanner interface {
	Scan(dest ...any) error
}

func scanReport(row reportScanner, r *model.Report) error {
	var summary string
	err := row.Scan(
		&r.ID,
		&r.Username,
		&r.CreatedAt,
		&r.Snapshot.CPUUtilization,
		&r.Snapshot.MemoryUsage,
		&r.Snapshot.BandwidthUtilization,
		&r.Snapshot.Throughput,
		&r.Snapshot.Latency,
		&r.Snapshot.Jitter,
		&r.Snapshot.PacketLoss,
		&r.Snapshot.ErrorRates,
		&r.Snapshot.ConnectionTimes,
		&r.Snapshot.NetworkAvailability,
		&r.Snapshot.TransmissionDelay,
		&r.Snapshot.GridVoltage,
		&r.Snapshot.CoolingTemperature,
		&r.Snapshot.NetworkTrafficVolume,
		&r.SystemState,
		&r.ReportText,
		&r.Feedback,
		&summary,
		&r.IssueStatus,
		&r.Upvotes,
		&r.Downvotes,
	)
	if err != nil {
		return err
	}
	if summary != "" {
		r.FeedbackSummary = strings.Split(summary, "\n")
	}
	return nil
}

func (db *Postgres) InsertReport(ctx context.Context, r *model.Report) (*model.Report, error) {
	query := `
		INSERT INTO reports (
			username,
			cpu_utilization, memory_usage, bandwidth_utilization, throughput,
			latency, jitter, packet_loss, error_rates, connection_times,
			network_availability, transmission_delay, grid_voltage,
			cooling_temperature, network_traffic_volume,
			system_state, report_text, feedback, feedback_summary, issue_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + reportColumns

	row := db.Pool.QueryRow(ctx, query,
		r.Username,
		r.Snapshot.CPUUtilization,
		r.Snapshot.MemoryUsage,
		r.Snapshot.BandwidthUtilization,
		r.Snapshot.Throughput,
		r.Snapshot.Latency,
		r.Snapshot.Jitter,
		r.Snapshot.PacketLoss,
		r.Snapshot.ErrorRates,
		r.Snapshot.ConnectionTimes,
		r.Snapshot.NetworkAvailability,
		r.Snapshot.TransmissionDelay,
		r.Snapshot.GridVoltage,
		r.Snapshot.CoolingTemperature,
		r.Snapshot.NetworkTrafficVolume,
		r.SystemState,
		r.ReportText,
		r.Feedback,
		strings.Join(r.FeedbackSummary, "\n"),
		r.IssueStatus,
	)

	var saved model.Report
	if err := scanReport(row, &saved); err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}
	return &saved, nil
}

func (db *Postgres) GetReport(ctx context.Context, id int64) (*model.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	var r model.Report
	if err := scanReport(db.Pool.QueryRow(ctx, query, id), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ReportWithVote is a report row joined with the viewer's own vote.
type ReportWithVote struct {
	model.Report
	MyVote model.VoteState
}

func (db *Postgres) ListReports(ctx context.Context, viewer string, filter model.ReportFilter) ([]ReportWithVote, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT r.id, r.username, r.created_at,
		       r.cpu_utilization, r.memory_usage, r.bandwidth_utilization, r.throughput,
		       r.latency, r.jitter, r.packet_loss, r.error_rates, r.connection_times,
		       r.network_availability, r.transmission_delay, r.grid_voltage,
		       r.cooling_temperature, r.network_traffic_volume,
		       r.system_state, r.report_text, r.feedback, r.feedback_summary, r.issue_status,
		       r.upvotes, r.downvotes,
		       COALESCE(v.vote_type, '')
		FROM reports r
		LEFT JOIN report_votes v ON v.report_id = r.id AND v.username = $1
	`)

	args := []any{viewer}
	var conds []string
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(r.report_text ILIKE $%d OR r.username ILIKE $%d)", len(args), len(args)))
	}
	if len(filter.SystemStates) > 0 {
		states := make([]string, 0, len(filter.SystemStates))
		for _, s := range filter.SystemStates {
			states = append(states, string(s))
		}
		args = append(args, states)
		conds = append(conds, fmt.Sprintf("r.system_state = ANY($%d)", len(args)))
	}
	if len(filter.IssueStatuses) > 0 {
		statuses := make([]string, 0, len(filter.IssueStatuses))
		for _, s := range filter.IssueStatuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("r.issue_status = ANY($%d)", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY r.created_at DESC")

	rows, err := db.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]ReportWithVote, 0)
	for rows.Next() {
		var rec ReportWithVote
		var summary, myVote string
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&rec.CreatedAt,
			&rec.Snapshot.CPUUtilization,
			&rec.Snapshot.MemoryUsage,
			&rec.Snapshot.BandwidthUtilization,
			&rec.Snapshot.Throughput,
			&rec.Snapshot.Latency,
			&rec.Snapshot.Jitter,
			&rec.Snapshot.PacketLoss,
			&rec.Snapshot.ErrorRates,
			&rec.Snapshot.ConnectionTimes,
			&rec.Snapshot.NetworkAvailability,
			&rec.Snapshot.TransmissionDelay,
			&rec.Snapshot.GridVoltage,
			&rec.Snapshot.CoolingTemperature,
			&rec.Snapshot.NetworkTrafficVolume,
			&rec.SystemState,
			&rec.ReportText,
			&rec.Feedback,
			&summary,
			&rec.IssueStatus,
			&rec.Upvotes,
			&rec.Downvotes,
			&myVote,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if summary != "" {
			rec.FeedbackSummary = strings.Split(summary, "\n")
		}
		rec.MyVote = model.VoteState(myVote)
		reports = append(reports, rec)
	}
	return reports, rows.Err()
}

// DeleteReport removes a report and its vote rows in one transaction. There
// is no foreign-key cascade; the vote rows must go explicitly.
func (db *Postgres) DeleteReport(ctx context.Context, id int64) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM report_votes WHERE report_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete report votes: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrReportNotFound
	}

	return tx.Commit(ctx)
}
