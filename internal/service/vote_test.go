package service

import (
	"context"
	"errors"
	"testing"

	"github.com/statuswatch/backend/internal/db"
	"github.com/statuswatch/backend/internal/model"
)

// memoryLedger mirrors the storage ledger: one vote row per (voter, report)
// pair plus incrementally maintained counters, applied atomically.
type memoryLedger struct {
	votes     map[int64]map[string]model.VoteState
	upvotes   map[int64]int64
	downvotes map[int64]int64
	failNext  bool
}

func newMemoryLedger(reportIDs ...int64) *memoryLedger {
	l := &memoryLedger{
		votes:     make(map[int64]map[string]model.VoteState),
		upvotes:   make(map[int64]int64),
		downvotes: make(map[int64]int64),
	}
	for _, id := range reportIDs {
		l.votes[id] = make(map[string]model.VoteState)
	}
	return l
}

func (l *memoryLedger) CastVote(ctx context.Context, reportID int64, username string, cast model.VoteType) (*model.VoteResult, error) {
	if l.failNext {
		l.failNext = false
		return nil, errors.New("storage failure")
	}
	voters, ok := l.votes[reportID]
	if !ok {
		return nil, db.ErrReportNotFound
	}

	next, deltaUp, deltaDown, outcome := model.VoteTransition(voters[username], cast)
	if next == model.VoteStateNone {
		delete(voters, username)
	} else {
		voters[username] = next
	}
	l.upvotes[reportID] += deltaUp
	l.downvotes[reportID] += deltaDown

	return &model.VoteResult{
		Outcome:   outcome,
		MyVote:    next,
		Upvotes:   l.upvotes[reportID],
		Downvotes: l.downvotes[reportID],
	}, nil
}

// countRows recomputes the counters from the vote rows, as a reconciliation
// check against the incrementally maintained values.
func (l *memoryLedger) countRows(reportID int64) (up, down int64) {
	for _, state := range l.votes[reportID] {
		switch state {
		case model.VoteStateUp:
			up++
		case model.VoteStateDown:
			down++
		}
	}
	return up, down
}

func TestVoteCastOutcomes(t *testing.T) {
	ledger := newMemoryLedger(1)
	svc := NewVoteService(ledger)
	ctx := context.Background()

	result, err := svc.Cast(ctx, 1, "alice", "upvote")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != model.VoteRecorded || result.Upvotes != 1 || result.Downvotes != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	result, err = svc.Cast(ctx, 1, "alice", "downvote")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != model.VoteSwitched || result.Upvotes != 0 || result.Downvotes != 1 {
		t.Fatalf("unexpected switch result: %+v", result)
	}

	result, err = svc.Cast(ctx, 1, "alice", "downvote")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != model.VoteRetracted || result.Upvotes != 0 || result.Downvotes != 0 {
		t.Fatalf("unexpected retract result: %+v", result)
	}
}

func TestVoteCastInvalidType(t *testing.T) {
	svc := NewVoteService(newMemoryLedger(1))
	if _, err := svc.Cast(context.Background(), 1, "alice", "sideways"); !errors.Is(err, ErrInvalidVote) {
		t.Fatalf("expected ErrInvalidVote, got %v", err)
	}
}

func TestVoteCastUnknownReport(t *testing.T) {
	svc := NewVoteService(newMemoryLedger(1))
	if _, err := svc.Cast(context.Background(), 99, "alice", "upvote"); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestVoteDoubleCastIsIdempotent(t *testing.T) {
	ledger := newMemoryLedger(1)
	svc := NewVoteService(ledger)
	ctx := context.Background()

	for _, vote := range []string{"upvote", "upvote"} {
		if _, err := svc.Cast(ctx, 1, "alice", vote); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ledger.upvotes[1] != 0 || ledger.downvotes[1] != 0 {
		t.Fatalf("expected counters back at zero, got up=%d down=%d", ledger.upvotes[1], ledger.downvotes[1])
	}
	if _, exists := ledger.votes[1]["alice"]; exists {
		t.Fatal("expected no vote row after toggle-off")
	}
}

func TestVoteCountersReconcileWithRows(t *testing.T) {
	ledger := newMemoryLedger(1, 2)
	svc := NewVoteService(ledger)
	ctx := context.Background()

	sequence := []struct {
		reportID int64
		voter    string
		vote     string
	}{
		{1, "alice", "upvote"},
		{1, "bob", "upvote"},
		{1, "carol", "downvote"},
		{1, "alice", "downvote"}, // switch
		{1, "bob", "upvote"},     // retract
		{2, "alice", "downvote"},
		{2, "alice", "downvote"}, // retract
		{2, "bob", "upvote"},
		{1, "dave", "downvote"},
		{1, "carol", "upvote"}, // switch back
	}

	for _, step := range sequence {
		if _, err := svc.Cast(ctx, step.reportID, step.voter, step.vote); err != nil {
			t.Fatalf("cast %+v: unexpected error: %v", step, err)
		}
	}

	for _, reportID := range []int64{1, 2} {
		up, down := ledger.countRows(reportID)
		if ledger.upvotes[reportID] != up || ledger.downvotes[reportID] != down {
			t.Fatalf("report %d: counters (%d,%d) diverged from rows (%d,%d)",
				reportID, ledger.upvotes[reportID], ledger.downvotes[reportID], up, down)
		}
		if up < 0 || down < 0 || ledger.upvotes[reportID] < 0 || ledger.downvotes[reportID] < 0 {
			t.Fatalf("report %d: negative counters", reportID)
		}
	}
}

func TestVoteStorageFailureSurfaces(t *testing.T) {
	ledger := newMemoryLedger(1)
	svc := NewVoteService(ledger)
	ctx := context.Background()

	ledger.failNext = true
	if _, err := svc.Cast(ctx, 1, "alice", "upvote"); err == nil {
		t.Fatal("expected storage failure to surface")
	}
	// Ledger untouched; the retried cast behaves as a first vote.
	result, err := svc.Cast(ctx, 1, "alice", "upvote")
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if result.Outcome != model.VoteRecorded || result.Upvotes != 1 {
		t.Fatalf("unexpected retry result: %+v", result)
	}
}
