package identity

import (
	"strings"
	"testing"
)

func TestSimilarity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"mahomes", "mahomes", 1},
		{"abcd", "abce", 0.75},
		{"abcd", "", 0},
	}

	for _, tc := range cases {
		if got := Similarity(tc.a, tc.b); got != tc.want {
			t.Fatalf("Similarity(%q, %q): got=%g want=%g", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestMatcher_Resolve_ThresholdIsInclusive(t *testing.T) {
	t.Parallel()

	// 20 runes, 3 substitutions: score is exactly 1 - 3/20 = 0.85.
	known := []PoolIdentity{{
		Key:         "exact_key",
		DisplayName: strings.Repeat("a", 20),
		Team:        "KC",
		Position:    "QB",
	}}
	incoming := strings.Repeat("a", 17) + "bbb"

	m := NewMatcher(0.85)
	res := m.Resolve(incoming, "KC", "QB", known)
	if !res.Accepted {
		t.Fatalf("score %g at threshold 0.85 must be accepted", res.Score)
	}
	if res.Key != "exact_key" {
		t.Fatalf("unexpected key: got=%q want=%q", res.Key, "exact_key")
	}

	// One more substitution drops to 0.80: suggestion only.
	res = m.Resolve(strings.Repeat("a", 16)+"bbbb", "KC", "QB", known)
	if res.Accepted {
		t.Fatalf("score %g below threshold must not be accepted", res.Score)
	}
	if res.Key != "exact_key" {
		t.Fatalf("below-threshold resolution must still carry the suggestion, got=%q", res.Key)
	}
}

func TestMatcher_Resolve_NeverCrossesTeamOrPosition(t *testing.T) {
	t.Parallel()

	known := []PoolIdentity{
		{Key: "k1", DisplayName: "Patrick Mahomes", Team: "KC", Position: "QB"},
		{Key: "k2", DisplayName: "Patrick Mahomes", Team: "DEN", Position: "QB"},
	}

	m := NewMatcher(0.85)
	if res := m.Resolve("Patrick Mahomes", "KC", "WR", known); res.Key != "" || res.Accepted {
		t.Fatalf("cross-position match must yield empty resolution, got=%+v", res)
	}
	if res := m.Resolve("Patrick Mahomes", "NYJ", "QB", known); res.Key != "" {
		t.Fatalf("cross-team match must yield empty resolution, got=%+v", res)
	}
}

func TestMatcher_Resolve_PicksBestCandidate(t *testing.T) {
	t.Parallel()

	known := []PoolIdentity{
		{Key: "worse", DisplayName: "Patrik Mahome", Team: "KC", Position: "QB"},
		{Key: "better", DisplayName: "Patrick Mahomes", Team: "KC", Position: "QB"},
	}

	res := NewMatcher(0.85).Resolve("Patrick Mahomes", "KC", "QB", known)
	if res.Key != "better" || !res.Accepted || res.Score != 1 {
		t.Fatalf("unexpected resolution: got=%+v", res)
	}
}

func TestMatcher_Resolve_EmptyCandidateSet(t *testing.T) {
	t.Parallel()

	res := NewMatcher(0.85).Resolve("Patrick Mahomes", "KC", "QB", nil)
	if res.Key != "" || res.Accepted || res.Score != 0 {
		t.Fatalf("empty candidate set must yield the zero resolution, got=%+v", res)
	}
}
