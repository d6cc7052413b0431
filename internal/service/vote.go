package service

import (
	"context"
	"errors"

	"github.com/statuswatch/backend/internal/db"
	"github.com/statuswatch/backend/internal/model"
)

var (
	ErrInvalidVote    = errors.New("invalid vote type")
	ErrReportNotFound = errors.New("report not found")
)

// VoteLedger stores one vote per (voter, report) pair and keeps the
// report's counters consistent with the vote rows.
type VoteLedger interface {
	CastVote(ctx context.Context, reportID int64, username string, cast model.VoteType) (*model.VoteResult, error)
}

type VoteService struct {
	ledger VoteLedger
}

func NewVoteService(ledger VoteLedger) *VoteService {
	return &VoteService{ledger: ledger}
}

// Cast validates the vote direction and applies it. A storage failure
// leaves the ledger untouched and surfaces as an error the caller may
// retry.
func (s *VoteService) Cast(ctx context.Context, reportID int64, username, voteType string) (*model.VoteResult, error) {
	cast := model.VoteType(voteType)
	if !model.ValidVoteType(cast) {
		return nil, ErrInvalidVote
	}

	result, err := s.ledger.CastVote(ctx, reportID, username, cast)
	if err != nil {
		if errors.Is(err, db.ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return result, nil
}
