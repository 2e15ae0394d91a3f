package importrun

import (
	"math"
	"sort"
)

// Diff summarizes drift from a previous snapshot to the current one,
// joined on identity key. Either side may be empty; an empty previous side
// yields additions only, so first imports naturally produce a zero summary
// when both sides are empty.
func Diff(previous, current []SnapshotEntry) DeltaSummary {
	prev := byKey(previous)

	var out DeltaSummary
	var ownershipAbs float64
	for _, curr := range current {
		before, ok := prev[curr.IdentityKey]
		if !ok {
			out.Added++
			continue
		}
		delete(prev, curr.IdentityKey)

		if before.Ownership != curr.Ownership {
			out.OwnershipChanged++
			ownershipAbs += math.Abs(curr.Ownership - before.Ownership)
		}
		if before.Projection != curr.Projection {
			out.ProjectionChanged++
		}
	}
	out.Removed = len(prev)

	if out.OwnershipChanged > 0 {
		out.OwnershipMeanAbsChange = ownershipAbs / float64(out.OwnershipChanged)
	}
	return out
}

// Compare builds the detailed per-player view between two snapshots.
// Change lists and addition/removal lists are sorted by identity key so
// the output is stable for equal inputs.
func Compare(fromID, toID string, from, to []SnapshotEntry) Comparison {
	prev := byKey(from)

	out := Comparison{
		FromImportID:      fromID,
		ToImportID:        toID,
		OwnershipChanges:  []FieldChange{},
		ProjectionChanges: []FieldChange{},
		Added:             []string{},
		Removed:           []string{},
	}
	for _, curr := range to {
		before, ok := prev[curr.IdentityKey]
		if !ok {
			out.Added = append(out.Added, curr.IdentityKey)
			continue
		}
		delete(prev, curr.IdentityKey)

		if before.Ownership != curr.Ownership {
			out.OwnershipChanges = append(out.OwnershipChanges, FieldChange{
				IdentityKey: curr.IdentityKey,
				From:        before.Ownership,
				To:          curr.Ownership,
			})
		}
		if before.Projection != curr.Projection {
			out.ProjectionChanges = append(out.ProjectionChanges, FieldChange{
				IdentityKey: curr.IdentityKey,
				From:        before.Projection,
				To:          curr.Projection,
			})
		}
	}
	for key := range prev {
		out.Removed = append(out.Removed, key)
	}

	sort.Slice(out.OwnershipChanges, func(i, j int) bool {
		return out.OwnershipChanges[i].IdentityKey < out.OwnershipChanges[j].IdentityKey
	})
	sort.Slice(out.ProjectionChanges, func(i, j int) bool {
		return out.ProjectionChanges[i].IdentityKey < out.ProjectionChanges[j].IdentityKey
	})
	sort.Strings(out.Added)
	sort.Strings(out.Removed)
	return out
}

func byKey(entries []SnapshotEntry) map[string]SnapshotEntry {
	m := make(map[string]SnapshotEntry, len(entries))
	for _, e := range entries {
		m[e.IdentityKey] = e
	}
	return m
}
