package service

import "testing"

func TestScoreTrust(t *testing.T) {
	tests := []struct {
		name        string
		upvotes     int64
		downvotes   int64
		wantPercent float64
		wantTier    TrustTier
	}{
		{"no-votes-assumed-trustworthy", 0, 0, 100, TrustTierNone},
		{"boundary-30-at-10-votes-is-low-trust", 3, 7, 30, TrustTierLowTrust},
		{"highly-untrusted", 2, 8, 20, TrustTierHighlyUntrusted},
		{"low-trust", 4, 6, 40, TrustTierLowTrust},
		{"boundary-50-at-10-votes-stays-none", 5, 5, 50, TrustTierNone},
		{"boundary-40-at-5-votes-stays-none", 2, 3, 40, TrustTierNone},
		{"low-trust-warning", 1, 4, 20, TrustTierLowTrustWarning},
		{"few-votes-no-warning", 0, 4, 0, TrustTierNone},
		{"all-upvotes", 10, 0, 100, TrustTierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, tier := ScoreTrust(tt.upvotes, tt.downvotes)
			if percent != tt.wantPercent || tier != tt.wantTier {
				t.Fatalf("ScoreTrust(%d, %d) = (%v, %q), want (%v, %q)",
					tt.upvotes, tt.downvotes, percent, tier, tt.wantPercent, tt.wantTier)
			}
		})
	}
}

func TestTrustMessage(t *testing.T) {
	if TrustMessage(TrustTierNone) != "" {
		t.Fatal("expected no message for NONE tier")
	}
	for _, tier := range []TrustTier{TrustTierLowTrustWarning, TrustTierLowTrust, TrustTierHighlyUntrusted} {
		if TrustMessage(tier) == "" {
			t.Fatalf("expected message for tier %q", tier)
		}
	}
}
