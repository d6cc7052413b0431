package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/statuswatch/backend/internal/model"
)

var ErrReportNotFound = errors.New("report not found")

func (db *Postgres) GetVote(ctx context.Context, username string, reportID int64) (model.VoteState, error) {
	var voteType string
	err := db.Pool.QueryRow(ctx,
		`SELECT vote_type FROM report_votes WHERE username = $1 AND report_id = $2`,
		username, reportID,
	).Scan(&voteType)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.VoteStateNone, nil
		}
		return model.VoteStateNone, err
	}
	return model.VoteState(voteType), nil
}

// CastVote applies one vote against the (username, report) pair and updates
// the report's counters in the same transaction. The report row is locked
// first so concurrent votes on the same report serialize and the counters
// never drift from the vote rows. Any failure rolls the whole cast back.
func (db *Postgres) CastVote(ctx context.Context, reportID int64, username string, cast model.VoteType) (*model.VoteResult, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM reports WHERE id = $1 FOR UPDATE`, reportID).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to lock report: %w", err)
	}

	current := model.VoteStateNone
	var voteType string
	err = tx.QueryRow(ctx,
		`SELECT vote_type FROM report_votes WHERE username = $1 AND report_id = $2 FOR UPDATE`,
		username, reportID,
	).Scan(&voteType)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to read vote: %w", err)
	}
	if err == nil {
		current = model.VoteState(voteType)
	}

	next, deltaUp, deltaDown, outcome := model.VoteTransition(current, cast)

	switch {
	case next == model.VoteStateNone:
		_, err = tx.Exec(ctx,
			`DELETE FROM report_votes WHERE username = $1 AND report_id = $2`,
			username, reportID)
	case current == model.VoteStateNone:
		_, err = tx.Exec(ctx,
			`INSERT INTO report_votes (username, report_id, vote_type) VALUES ($1, $2, $3)`,
			username, reportID, string(next))
	default:
		_, err = tx.Exec(ctx,
			`UPDATE report_votes SET vote_type = $3, updated_at = NOW() WHERE username = $1 AND report_id = $2`,
			username, reportID, string(next))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write vote: %w", err)
	}

	result := model.VoteResult{Outcome: outcome, MyVote: next}
	err = tx.QueryRow(ctx, `
		UPDATE reports
		SET upvotes = upvotes + $2, downvotes = downvotes + $3
		WHERE id = $1
		RETURNING upvotes, downvotes
	`, reportID, deltaUp, deltaDown).Scan(&result.Upvotes, &result.Downvotes)
	if err != nil {
		return nil, fmt.Errorf("failed to update vote counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}
	return &result, nil
}
