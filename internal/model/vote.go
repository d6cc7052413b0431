package model

// VoteType is the direction of a cast vote.
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// VoteState is a voter's current position on a report. The empty state means
// no vote row exists for the (voter, report) pair.
type VoteState string

const (
	VoteStateNone VoteState = ""
	VoteStateUp   VoteState = "upvote"
	VoteStateDown VoteState = "downvote"
)

// VoteOutcome describes what a cast vote did to the ledger.
type VoteOutcome string

const (
	VoteRecorded  VoteOutcome = "recorded"
	VoteRetracted VoteOutcome = "retracted"
	VoteSwitched  VoteOutcome = "switched"
)

// VoteTransition resolves one cast against the voter's current state and
// returns the next state, the counter deltas to apply to the report, and
// the outcome. Casting the same direction twice retracts the vote; casting
// the opposite direction switches it. These are the only transitions.
func VoteTransition(current VoteState, cast VoteType) (next VoteState, deltaUp, deltaDown int64, outcome VoteOutcome) {
	switch current {
	case VoteStateNone:
		if cast == VoteUp {
			return VoteStateUp, 1, 0, VoteRecorded
		}
		return VoteStateDown, 0, 1, VoteRecorded
	case VoteStateUp:
		if cast == VoteUp {
			return VoteStateNone, -1, 0, VoteRetracted
		}
		return VoteStateDown, -1, 1, VoteSwitched
	default: // VoteStateDown
		if cast == VoteDown {
			return VoteStateNone, 0, -1, VoteRetracted
		}
		return VoteStateUp, 1, -1, VoteSwitched
	}
}

// ValidVoteType reports whether v is a castable vote direction.
func ValidVoteType(v VoteType) bool {
	return v == VoteUp || v == VoteDown
}

// VoteResult is the ledger state after a cast, returned to the caller.
type VoteResult struct {
	Outcome   VoteOutcome `json:"outcome"`
	MyVote    VoteState   `json:"my_vote"`
	Upvotes   int64       `json:"upvotes"`
	Downvotes int64       `json:"downvotes"`
}

// CastVoteRequest is the vote endpoint payload.
type CastVoteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}
