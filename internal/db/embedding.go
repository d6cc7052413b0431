package db

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/statuswatch/backend/internal/model"
)

// EnsureEmbeddingSchema requires the pgvector extension. Callers treat a
// failure here as "semantic retrieval unavailable" rather than fatal.
func (db *Postgres) EnsureEmbeddingSchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`
		CREATE TABLE IF NOT EXISTS report_embeddings (
			id BIGSERIAL PRIMARY KEY,
			report_id BIGINT NOT NULL UNIQUE,
			embedding vector(768) NOT NULL,
			model TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
	}
	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to ensure embedding schema: %w", err)
		}
	}
	return nil
}

func (db *Postgres) InsertReportEmbedding(ctx context.Context, reportID int64, embedModel string, vector []float32) (int64, error) {
	query := `
		INSERT INTO report_embeddings (report_id, embedding, model)
		VALUES ($1, $2, $3)
		ON CONFLICT (report_id) DO UPDATE SET embedding = EXCLUDED.embedding, model = EXCLUDED.model
		RETURNING id
	`
	var id int64
	err := db.Pool.QueryRow(ctx, query, reportID, pgvector.NewVector(vector), embedModel).Scan(&id)
	return id, err
}

func (db *Postgres) DeleteReportEmbedding(ctx context.Context, reportID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM report_embeddings WHERE report_id = $1`, reportID)
	return err
}

// SearchSimilarReports returns the stored reports closest to the query
// vector by cosine distance.
func (db *Postgres) SearchSimilarReports(ctx context.Context, vector []float32, limit int32) ([]model.Report, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE id IN (
			SELECT report_id FROM report_embeddings
			ORDER BY embedding <=> $1
			LIMIT $2
		)
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search report embeddings: %w", err)
	}
	defer rows.Close()

	reports := make([]model.Report, 0, limit)
	for rows.Next() {
		var r model.Report
		if err := scanReport(rows, &r); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// RecentReports is the fallback context source when embeddings are not
// available.
func (db *Postgres) RecentReports(ctx context.Context, limit int32) ([]model.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC LIMIT $1`
	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reports: %w", err)
	}
	defer rows.Close()

	reports := make([]model.Report, 0, limit)
	for rows.Next() {
		var r model.Report
		if err := scanReport(rows, &r); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
