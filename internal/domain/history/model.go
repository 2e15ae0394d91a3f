package history

import "time"

// Record is one player-week of box score data. Historical records live
// outside any scope; a history import replaces the full set.
// Row is the raw shape of one player-week as parsed from the box-score
// export, before validation and identity resolution.
type Row struct {
	Season      int
	Week        int
	Name        string
	Team        string
	Opponent    string
	Position    string
	Snaps       int
	SnapShare   float64
	Targets     int
	TargetShare float64
	Touches     int
	TouchShare  float64
	Points      float64
	Salary      int
}

type Record struct {
	IdentityKey string
	Season      int
	Week        int
	Team        string
	Opponent    string
	Position    string
	Snaps       int
	SnapShare   float64
	Targets     int
	TargetShare float64
	Touches     int
	TouchShare  float64
	Points      float64
	Salary      int
	ImportedAt  time.Time
}
