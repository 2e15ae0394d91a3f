package postgres

import (
	"time"

	"github.com/dfstools/poolimport/internal/domain/pool"
)

type poolEntryTableModel struct {
	IdentityKey string     `db:"identity_key"`
	Scope       string     `db:"scope"`
	Source      string     `db:"source"`
	DisplayName string     `db:"display_name"`
	Team        string     `db:"team"`
	Position    string     `db:"position"`
	Salary      int        `db:"salary"`
	Projection  float64    `db:"projection"`
	Ownership   float64    `db:"ownership"`
	Ceiling     *float64   `db:"ceiling"`
	Floor       *float64   `db:"floor"`
	Notes       string     `db:"notes"`
	ImportedAt  time.Time `db:"imported_at"`
}

func poolEntryToInsertModel(e pool.Entry) poolEntryTableModel {
	return poolEntryTableModel{
		IdentityKey: e.IdentityKey,
		Scope:       e.Scope,
		Source:      string(e.Source),
		DisplayName: e.DisplayName,
		Team:        e.Team,
		Position:    e.Position,
		Salary:      e.Salary,
		Projection:  e.Projection,
		Ownership:   e.Ownership,
		Ceiling:     e.Ceiling,
		Floor:       e.Floor,
		Notes:       e.Notes,
		ImportedAt:  e.ImportedAt,
	}
}

func (m poolEntryTableModel) toDomain() pool.Entry {
	return pool.Entry{
		IdentityKey: m.IdentityKey,
		Scope:       m.Scope,
		Source:      pool.Source(m.Source),
		DisplayName: m.DisplayName,
		Team:        m.Team,
		Position:    m.Position,
		Salary:      m.Salary,
		Projection:  m.Projection,
		Ownership:   m.Ownership,
		Ceiling:     m.Ceiling,
		Floor:       m.Floor,
		Notes:       m.Notes,
		ImportedAt:  m.ImportedAt,
	}
}
