package postgres

import (
	"time"

	"github.com/dfstools/poolimport/internal/domain/identity"
)

type aliasTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	AliasText    string    `db:"alias_text"`
	CanonicalKey string    `db:"canonical_key"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type aliasInsertModel struct {
	PublicID     string    `db:"public_id"`
	AliasText    string    `db:"alias_text"`
	CanonicalKey string    `db:"canonical_key"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func aliasToInsertModel(a identity.Alias) aliasInsertModel {
	return aliasInsertModel{
		PublicID:     a.ID,
		AliasText:    a.AliasText,
		CanonicalKey: a.CanonicalKey,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m aliasTableModel) toDomain() identity.Alias {
	return identity.Alias{
		ID:           m.PublicID,
		AliasText:    m.AliasText,
		CanonicalKey: m.CanonicalKey,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type candidateTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	ImportID     string     `db:"import_public_id"`
	RawName      string     `db:"raw_name"`
	Team         string     `db:"team"`
	Position     string     `db:"position"`
	SuggestedKey string     `db:"suggested_key"`
	Score        float64    `db:"score"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	ResolvedAt   *time.Time `db:"resolved_at"`
}

type candidateInsertModel struct {
	PublicID     string     `db:"public_id"`
	ImportID     string     `db:"import_public_id"`
	RawName      string     `db:"raw_name"`
	Team         string     `db:"team"`
	Position     string     `db:"position"`
	SuggestedKey string     `db:"suggested_key"`
	Score        float64    `db:"score"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	ResolvedAt   *time.Time `db:"resolved_at"`
}

func candidateToInsertModel(c identity.UnmatchedCandidate) candidateInsertModel {
	return candidateInsertModel{
		PublicID:     c.ID,
		ImportID:     c.ImportID,
		RawName:      c.RawName,
		Team:         c.Team,
		Position:     c.Position,
		SuggestedKey: c.SuggestedKey,
		Score:        c.Score,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		ResolvedAt:   c.ResolvedAt,
	}
}

func (m candidateTableModel) toDomain() identity.UnmatchedCandidate {
	return identity.UnmatchedCandidate{
		ID:           m.PublicID,
		ImportID:     m.ImportID,
		RawName:      m.RawName,
		Team:         m.Team,
		Position:     m.Position,
		SuggestedKey: m.SuggestedKey,
		Score:        m.Score,
		Status:       identity.CandidateStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		ResolvedAt:   m.ResolvedAt,
	}
}
