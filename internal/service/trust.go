package service

// TrustTier is the qualitative warning label derived from a report's vote
// counts. Breakpoints are fixed policy; interval bounds are half-open, so a
// boundary value always falls in the milder band.
type TrustTier string

const (
	TrustTierNone            TrustTier = "NONE"
	TrustTierLowTrustWarning TrustTier = "LOW_TRUST_WARNING"
	TrustTierLowTrust        TrustTier = "LOW_TRUST"
	TrustTierHighlyUntrusted TrustTier = "HIGHLY_UNTRUSTED"
)

// ScoreTrust derives the trust percentage and warning tier from vote
// counts. A report with no votes is assumed trustworthy (100), not neutral.
func ScoreTrust(upvotes, downvotes int64) (float64, TrustTier) {
	total := upvotes + downvotes
	if total == 0 {
		return 100, TrustTierNone
	}

	percent := float64(upvotes) / float64(total) * 100

	switch {
	case total >= 10 && percent < 30:
		return percent, TrustTierHighlyUntrusted
	case total >= 10 && percent < 50:
		return percent, TrustTierLowTrust
	case total >= 5 && total < 10 && percent < 40:
		return percent, TrustTierLowTrustWarning
	default:
		return percent, TrustTierNone
	}
}

// TrustMessage is the display string for a warning tier; empty for NONE.
func TrustMessage(tier TrustTier) string {
	switch tier {
	case TrustTierHighlyUntrusted:
		return "This report has been flagged as potentially unreliable by multiple users."
	case TrustTierLowTrust:
		return "This report has received mixed feedback from users."
	case TrustTierLowTrustWarning:
		return "This report has received several negative ratings."
	default:
		return ""
	}
}
