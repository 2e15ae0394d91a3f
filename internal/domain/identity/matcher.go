package identity

// PoolIdentity is one already-known player the matcher can resolve an
// incoming record against.
type PoolIdentity struct {
	Key         string
	DisplayName string
	Team        string
	Position    string
}

// Resolution is the matcher's verdict for one incoming record.
// Accepted=true carries a resolved key. Accepted=false with a non-empty
// Key is a below-threshold suggestion for human review. Both false and
// empty means the candidate set was empty: the record is a new entity.
type Resolution struct {
	Key      string
	Score    float64
	Accepted bool
}

// Matcher scores incoming names against known identities sharing the exact
// same team and position. The threshold is the single most consequential
// parameter of the pipeline; it comes from configuration, default 0.85.
type Matcher struct {
	Threshold float64
}

func NewMatcher(threshold float64) Matcher {
	return Matcher{Threshold: threshold}
}

// Resolve picks the best-scoring candidate among identities with the same
// team and position. Cross-team or cross-position names are never compared,
// even on a perfect name match.
func (m Matcher) Resolve(name, team, position string, known []PoolIdentity) Resolution {
	normalized := Normalize(name)

	best := Resolution{}
	for _, candidate := range known {
		if candidate.Team != team || candidate.Position != position {
			continue
		}
		score := Similarity(normalized, Normalize(candidate.DisplayName))
		if score > best.Score || best.Key == "" {
			best = Resolution{Key: candidate.Key, Score: score}
		}
	}

	if best.Key == "" {
		return Resolution{}
	}
	best.Accepted = best.Score >= m.Threshold
	return best
}

// Similarity is normalized Levenshtein: 1 - distance/maxLen, in [0,1].
// Equal strings score 1, including two empty strings.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}

	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
