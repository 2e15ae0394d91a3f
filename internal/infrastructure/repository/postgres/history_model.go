package postgres

import (
	"time"

	"github.com/dfstools/poolimport/internal/domain/history"
)

type historyRecordTableModel struct {
	IdentityKey string    `db:"identity_key"`
	Season      int       `db:"season"`
	Week        int       `db:"week"`
	Team        string    `db:"team"`
	Opponent    string    `db:"opponent"`
	Position    string    `db:"position"`
	Snaps       int       `db:"snaps"`
	SnapShare   float64   `db:"snap_share"`
	Targets     int       `db:"targets"`
	TargetShare float64   `db:"target_share"`
	Touches     int       `db:"touches"`
	TouchShare  float64   `db:"touch_share"`
	Points      float64   `db:"points"`
	Salary      int       `db:"salary"`
	ImportedAt  time.Time `db:"imported_at"`
}

func historyRecordToInsertModel(r history.Record) historyRecordTableModel {
	return historyRecordTableModel(r)
}
