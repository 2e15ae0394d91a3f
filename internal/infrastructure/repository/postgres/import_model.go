package postgres

import (
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
)

type importRecordTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	Scope          string    `db:"scope"`
	Source         string    `db:"source"`
	FileName       string    `db:"file_name"`
	PersistedCount int       `db:"persisted_count"`
	Summary        string    `db:"summary"`
	CreatedAt      time.Time `db:"created_at"`
}

type importRecordInsertModel struct {
	PublicID       string    `db:"public_id"`
	Scope          string    `db:"scope"`
	Source         string    `db:"source"`
	FileName       string    `db:"file_name"`
	PersistedCount int       `db:"persisted_count"`
	Summary        string    `db:"summary"`
	CreatedAt      time.Time `db:"created_at"`
}

func importRecordToInsertModel(r importrun.Record) importRecordInsertModel {
	summary, err := sonic.MarshalString(r.Summary)
	if err != nil {
		summary = "{}"
	}
	return importRecordInsertModel{
		PublicID:       r.ID,
		Scope:          r.Scope,
		Source:         string(r.Source),
		FileName:       r.FileName,
		PersistedCount: r.PersistedCount,
		Summary:        summary,
		CreatedAt:      r.CreatedAt,
	}
}

func (m importRecordTableModel) toDomain() importrun.Record {
	var summary importrun.Summary
	_ = sonic.UnmarshalString(m.Summary, &summary)
	return importrun.Record{
		ID:             m.PublicID,
		Scope:          m.Scope,
		Source:         pool.Source(m.Source),
		FileName:       m.FileName,
		PersistedCount: m.PersistedCount,
		Summary:        summary,
		CreatedAt:      m.CreatedAt,
	}
}

type snapshotEntryTableModel struct {
	ImportID    string   `db:"import_public_id"`
	IdentityKey string   `db:"identity_key"`
	Salary      int      `db:"salary"`
	Projection  float64  `db:"projection"`
	Ownership   float64  `db:"ownership"`
	Ceiling     *float64 `db:"ceiling"`
	Floor       *float64 `db:"floor"`
}

func (m snapshotEntryTableModel) toDomain() importrun.SnapshotEntry {
	return importrun.SnapshotEntry{
		ImportID:    m.ImportID,
		IdentityKey: m.IdentityKey,
		Salary:      m.Salary,
		Projection:  m.Projection,
		Ownership:   m.Ownership,
		Ceiling:     m.Ceiling,
		Floor:       m.Floor,
	}
}
