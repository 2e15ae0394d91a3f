package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dfstools/poolimport/internal/domain/history"
	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
	"github.com/dfstools/poolimport/internal/platform/id"
	"github.com/dfstools/poolimport/internal/platform/logging"
)

// historyScope partitions global history imports in the import record
// table; the history source has no per-week scope.
const historyScope = "global"

// RecordParser turns raw file bytes into uniform pool records.
type RecordParser interface {
	Parse(data []byte) ([]pool.UniformRecord, error)
}

// HistoryParser turns raw file bytes into historical box-score rows.
type HistoryParser interface {
	Parse(data []byte) ([]history.Row, error)
}

// Parsers bundles the three format adapters. Salary is a factory because
// the projection sheet selection arrives per request.
type Parsers struct {
	Roster  RecordParser
	Salary  func(sheet pool.ProjectionSheet) (RecordParser, error)
	History HistoryParser
}

// ImportResult is the caller-facing outcome of one committed import.
// Deltas is nil on the first import of a scope+source pair.
type ImportResult struct {
	ImportID       string
	PersistedCount int
	UnmatchedCount int
	Summary        importrun.Summary
	Deltas         *importrun.DeltaSummary
}

type ImportService struct {
	importRepo importrun.Repository
	poolRepo   pool.Repository
	aliasRepo  identity.AliasRepository
	parsers    Parsers
	rules      pool.Rules
	matcher    identity.Matcher
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewImportService(
	importRepo importrun.Repository,
	poolRepo pool.Repository,
	aliasRepo identity.AliasRepository,
	parsers Parsers,
	rules pool.Rules,
	matcher identity.Matcher,
	idGen id.Generator,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		importRepo: importRepo,
		poolRepo:   poolRepo,
		aliasRepo:  aliasRepo,
		parsers:    parsers,
		rules:      rules,
		matcher:    matcher,
		idGen:      idGen,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ImportService) ImportRoster(ctx context.Context, scope, fileName string, data []byte) (*ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.ImportRoster")
	defer span.End()

	if !pool.ValidScope(strings.TrimSpace(scope)) {
		return nil, fmt.Errorf("%w: scope %q is not season-week", ErrInvalidInput, scope)
	}

	records, err := s.parsers.Roster.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}

	return s.runPoolImport(ctx, strings.TrimSpace(scope), pool.SourceRoster, fileName, records)
}

func (s *ImportService) ImportSalary(ctx context.Context, scope, fileName string, sheet pool.ProjectionSheet, data []byte) (*ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.ImportSalary")
	defer span.End()

	if !pool.ValidScope(strings.TrimSpace(scope)) {
		return nil, fmt.Errorf("%w: scope %q is not season-week", ErrInvalidInput, scope)
	}
	if !sheet.Valid() {
		return nil, fmt.Errorf("%w: projection sheet must be main or alt", ErrInvalidInput)
	}

	parser, err := s.parsers.Salary(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	records, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse salary file: %w", err)
	}

	return s.runPoolImport(ctx, strings.TrimSpace(scope), pool.SourceSalary, fileName, records)
}

// runPoolImport is the orchestration shared by the two pool sources:
// validate everything, resolve identities, then commit the whole batch in
// one repository transaction.
func (s *ImportService) runPoolImport(ctx context.Context, scope string, source pool.Source, fileName string, records []pool.UniformRecord) (*ImportResult, error) {
	now := s.now()

	var summary importrun.Summary
	validated := make([]pool.UniformRecord, 0, len(records))
	for _, rec := range records {
		rec, corrected, err := s.rules.Validate(rec)
		if err != nil {
			return nil, fmt.Errorf("validate record: %w", err)
		}
		if corrected {
			summary.CeilingFloorCorrected++
		}
		validated = append(validated, rec)
	}

	known, err := s.poolRepo.ListIdentities(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list pool identities: %w", err)
	}

	importID, err := s.idGen.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate import id: %w", err)
	}
	record := importrun.Record{
		ID:        importID,
		Scope:     scope,
		Source:    source,
		FileName:  fileName,
		CreatedAt: now,
	}

	var entries []pool.Entry
	entryIndex := map[string]int{}
	var candidates []identity.UnmatchedCandidate

	for _, rec := range validated {
		key, resolution, err := s.resolveIdentity(ctx, rec.Name, rec.Team, rec.Position, known, &summary)
		if err != nil {
			return nil, err
		}
		if key == "" {
			candidate, err := s.newCandidate(importID, rec.Name, rec.Team, rec.Position, resolution, now)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidate)
			continue
		}

		entry := buildEntry(key, scope, source, rec, now)
		if i, dup := entryIndex[key]; dup {
			entries[i] = entry
			continue
		}
		entryIndex[key] = len(entries)
		entries = append(entries, entry)
		known = append(known, identity.PoolIdentity{
			Key:         key,
			DisplayName: rec.Name,
			Team:        rec.Team,
			Position:    rec.Position,
		})
	}

	record.PersistedCount = len(entries)
	record.Summary = summary

	snapshots := make([]importrun.SnapshotEntry, 0, len(entries))
	for _, e := range entries {
		snapshots = append(snapshots, importrun.SnapshotEntry{
			ImportID:    importID,
			IdentityKey: e.IdentityKey,
			Salary:      e.Salary,
			Projection:  e.Projection,
			Ownership:   e.Ownership,
			Ceiling:     e.Ceiling,
			Floor:       e.Floor,
		})
	}

	prevID, hasPrev, err := s.importRepo.PreviousImportID(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("find previous import: %w", err)
	}

	input := importrun.CommitInput{
		Record:     record,
		Entries:    entries,
		Snapshots:  snapshots,
		Candidates: candidates,
	}
	if err := s.importRepo.CommitImport(ctx, input); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result := &ImportResult{
		ImportID:       importID,
		PersistedCount: len(entries),
		UnmatchedCount: len(candidates),
		Summary:        summary,
	}
	if hasPrev {
		prevSnapshots, err := s.importRepo.ListSnapshots(ctx, prevID)
		if err != nil {
			return nil, fmt.Errorf("list previous snapshots: %w", err)
		}
		deltas := importrun.Diff(prevSnapshots, snapshots)
		result.Deltas = &deltas
	}

	s.logger.InfoContext(ctx, "import committed",
		"import_id", importID,
		"scope", scope,
		"source", string(source),
		"persisted", len(entries),
		"unmatched", len(candidates),
	)
	return result, nil
}

func (s *ImportService) ImportHistory(ctx context.Context, fileName string, data []byte) (*ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.ImportHistory")
	defer span.End()

	rows, err := s.parsers.History.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse history file: %w", err)
	}

	now := s.now()
	importID, err := s.idGen.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate import id: %w", err)
	}
	record := importrun.Record{
		ID:        importID,
		Scope:     historyScope,
		Source:    pool.SourceHistory,
		FileName:  fileName,
		CreatedAt: now,
	}

	// History identities resolve against the full pool, every scope.
	known, err := s.poolRepo.ListIdentities(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list pool identities: %w", err)
	}

	var summary importrun.Summary
	var accepted []history.Record
	var candidates []identity.UnmatchedCandidate

	for _, row := range rows {
		validatedRow, err := s.validateHistoryRow(row)
		if err != nil {
			return nil, err
		}

		key, resolution, err := s.resolveIdentity(ctx, validatedRow.Name, validatedRow.Team, validatedRow.Position, known, &summary)
		if err != nil {
			return nil, err
		}
		if key == "" {
			candidate, err := s.newCandidate(importID, validatedRow.Name, validatedRow.Team, validatedRow.Position, resolution, now)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidate)
			continue
		}

		accepted = append(accepted, history.Record{
			IdentityKey: key,
			Season:      validatedRow.Season,
			Week:        validatedRow.Week,
			Team:        validatedRow.Team,
			Opponent:    validatedRow.Opponent,
			Position:    validatedRow.Position,
			Snaps:       validatedRow.Snaps,
			SnapShare:   validatedRow.SnapShare,
			Targets:     validatedRow.Targets,
			TargetShare: validatedRow.TargetShare,
			Touches:     validatedRow.Touches,
			TouchShare:  validatedRow.TouchShare,
			Points:      validatedRow.Points,
			Salary:      validatedRow.Salary,
			ImportedAt:  now,
		})
		known = append(known, identity.PoolIdentity{
			Key:         key,
			DisplayName: validatedRow.Name,
			Team:        validatedRow.Team,
			Position:    validatedRow.Position,
		})
	}

	record.PersistedCount = len(accepted)
	record.Summary = summary

	input := importrun.CommitInput{
		Record:     record,
		History:    accepted,
		Candidates: candidates,
	}
	if err := s.importRepo.CommitImport(ctx, input); err != nil {
		return nil, fmt.Errorf("commit history import: %w", err)
	}

	s.logger.InfoContext(ctx, "history import committed",
		"import_id", importID,
		"persisted", len(accepted),
		"unmatched", len(candidates),
	)
	return &ImportResult{
		ImportID:       importID,
		PersistedCount: len(accepted),
		UnmatchedCount: len(candidates),
		Summary:        summary,
	}, nil
}

// resolveIdentity applies the resolution ladder for one record: exact key,
// then alias, then fuzzy. An empty returned key means the record becomes a
// review candidate carrying the (possibly empty) suggestion.
func (s *ImportService) resolveIdentity(ctx context.Context, name, team, position string, known []identity.PoolIdentity, summary *importrun.Summary) (string, identity.Resolution, error) {
	builtKey := identity.BuildKey(name, team, position)
	for _, candidate := range known {
		if candidate.Key == builtKey {
			summary.ExactMatches++
			return builtKey, identity.Resolution{}, nil
		}
	}

	alias, ok, err := s.aliasRepo.Lookup(ctx, name)
	if err != nil {
		return "", identity.Resolution{}, fmt.Errorf("lookup alias: %w", err)
	}
	if ok {
		summary.AliasMatches++
		return alias.CanonicalKey, identity.Resolution{}, nil
	}

	resolution := s.matcher.Resolve(name, team, position, known)
	if resolution.Accepted {
		summary.FuzzyMatches++
		return resolution.Key, resolution, nil
	}
	if resolution.Key != "" {
		// Below threshold: a suggestion for human review, never a silent
		// acceptance.
		summary.Unmatched++
		return "", resolution, nil
	}

	// Empty candidate set: a brand new entity under its own key.
	summary.NewEntities++
	return builtKey, identity.Resolution{}, nil
}

func (s *ImportService) newCandidate(importID, name, team, position string, resolution identity.Resolution, now time.Time) (identity.UnmatchedCandidate, error) {
	candidateID, err := s.idGen.NewID()
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("generate candidate id: %w", err)
	}
	return identity.UnmatchedCandidate{
		ID:           candidateID,
		ImportID:     importID,
		RawName:      name,
		Team:         team,
		Position:     position,
		SuggestedKey: resolution.Key,
		Score:        resolution.Score,
		Status:       identity.CandidatePending,
		CreatedAt:    now,
	}, nil
}

func (s *ImportService) validateHistoryRow(row history.Row) (history.Row, error) {
	var salary *int
	if row.Salary != 0 {
		salary = &row.Salary
	}
	checked, _, err := s.rules.Validate(pool.UniformRecord{
		Name:     row.Name,
		Team:     row.Team,
		Position: row.Position,
		Salary:   salary,
	})
	if err != nil {
		return history.Row{}, fmt.Errorf("validate history row: %w", err)
	}
	row.Name = checked.Name
	row.Team = checked.Team
	row.Position = checked.Position

	for _, share := range []struct {
		field string
		value *float64
	}{
		{"snap_share", &row.SnapShare},
		{"target_share", &row.TargetShare},
		{"touch_share", &row.TouchShare},
	} {
		normalized, err := s.rules.ValidateShare(row.Name, share.field, *share.value)
		if err != nil {
			return history.Row{}, fmt.Errorf("validate history row: %w", err)
		}
		*share.value = normalized
	}
	return row, nil
}

func buildEntry(key, scope string, source pool.Source, rec pool.UniformRecord, now time.Time) pool.Entry {
	entry := pool.Entry{
		IdentityKey: key,
		Scope:       scope,
		Source:      source,
		DisplayName: rec.Name,
		Team:        rec.Team,
		Position:    rec.Position,
		Ceiling:     rec.Ceiling,
		Floor:       rec.Floor,
		Notes:       rec.Notes,
		ImportedAt:  now,
	}
	if rec.Salary != nil {
		entry.Salary = *rec.Salary
	}
	if rec.Projection != nil {
		entry.Projection = *rec.Projection
	}
	if rec.Ownership != nil {
		entry.Ownership = *rec.Ownership
	}
	return entry
}
