package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
	"github.com/dfstools/poolimport/internal/platform/id"
	"github.com/dfstools/poolimport/internal/platform/logging"
)

// AliasInvalidator drops a cached alias after a resolution writes one
// outside the caching wrapper's own Upsert path.
type AliasInvalidator interface {
	Invalidate(aliasText string)
}

type ReviewService struct {
	candidateRepo identity.CandidateRepository
	importRepo    importrun.Repository
	poolRepo      pool.Repository
	invalidator   AliasInvalidator
	idGen         id.Generator
	logger        *logging.Logger
}

// ReviewService owns the candidate lifecycle: list, map to a canonical
// key, or ignore. Both transitions are terminal.
func NewReviewService(
	candidateRepo identity.CandidateRepository,
	importRepo importrun.Repository,
	poolRepo pool.Repository,
	invalidator AliasInvalidator,
	idGen id.Generator,
	logger *logging.Logger,
) *ReviewService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReviewService{
		candidateRepo: candidateRepo,
		importRepo:    importRepo,
		poolRepo:      poolRepo,
		invalidator:   invalidator,
		idGen:         idGen,
		logger:        logger,
	}
}

func (s *ReviewService) ListCandidates(ctx context.Context, importID string, status identity.CandidateStatus) ([]identity.UnmatchedCandidate, error) {
	ctx, span := startUsecaseSpan(ctx, "ReviewService.ListCandidates")
	defer span.End()

	importID = strings.TrimSpace(importID)
	if importID == "" {
		return nil, fmt.Errorf("%w: import id is required", ErrInvalidInput)
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown candidate status %q", ErrInvalidInput, status)
	}

	_, exists, err := s.importRepo.GetRecord(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("get import record: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: import=%s", ErrNotFound, importID)
	}

	candidates, err := s.candidateRepo.ListByImport(ctx, importID, status)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

// MapCandidate resolves a pending candidate to a committed identity key,
// writing the alias that short-circuits every future import of the same
// raw name. Repeating a mapping for the same alias text updates the alias
// rather than duplicating it.
func (s *ReviewService) MapCandidate(ctx context.Context, candidateID, canonicalKey string) (identity.UnmatchedCandidate, error) {
	ctx, span := startUsecaseSpan(ctx, "ReviewService.MapCandidate")
	defer span.End()

	canonicalKey = strings.TrimSpace(canonicalKey)
	if canonicalKey == "" {
		return identity.UnmatchedCandidate{}, fmt.Errorf("%w: canonical key is required", ErrInvalidInput)
	}

	candidate, err := s.pendingCandidate(ctx, candidateID)
	if err != nil {
		return identity.UnmatchedCandidate{}, err
	}

	exists, err := s.poolRepo.KeyExists(ctx, canonicalKey)
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("check canonical key: %w", err)
	}
	if !exists {
		return identity.UnmatchedCandidate{}, fmt.Errorf("%w: canonical key %q was never committed", ErrInvalidInput, canonicalKey)
	}

	aliasID, err := s.idGen.NewID()
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("generate alias id: %w", err)
	}
	now := time.Now().UTC()
	alias := identity.Alias{
		ID:           aliasID,
		AliasText:    strings.TrimSpace(candidate.RawName),
		CanonicalKey: canonicalKey,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mapped, err := s.candidateRepo.Resolve(ctx, candidate.ID, alias)
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("resolve candidate: %w", err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(alias.AliasText)
	}

	s.logger.InfoContext(ctx, "candidate mapped",
		"candidate_id", mapped.ID,
		"alias", alias.AliasText,
		"canonical_key", canonicalKey,
	)
	return mapped, nil
}

// IgnoreCandidate marks a pending candidate ignored with no side effect.
func (s *ReviewService) IgnoreCandidate(ctx context.Context, candidateID string) (identity.UnmatchedCandidate, error) {
	ctx, span := startUsecaseSpan(ctx, "ReviewService.IgnoreCandidate")
	defer span.End()

	candidate, err := s.pendingCandidate(ctx, candidateID)
	if err != nil {
		return identity.UnmatchedCandidate{}, err
	}

	ignored, err := s.candidateRepo.Ignore(ctx, candidate.ID)
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("ignore candidate: %w", err)
	}

	s.logger.InfoContext(ctx, "candidate ignored", "candidate_id", ignored.ID)
	return ignored, nil
}

func (s *ReviewService) pendingCandidate(ctx context.Context, candidateID string) (identity.UnmatchedCandidate, error) {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return identity.UnmatchedCandidate{}, fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}

	candidate, exists, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("get candidate: %w", err)
	}
	if !exists {
		return identity.UnmatchedCandidate{}, fmt.Errorf("%w: candidate=%s", ErrNotFound, candidateID)
	}
	if candidate.Status != identity.CandidatePending {
		return identity.UnmatchedCandidate{}, fmt.Errorf("%w: candidate %s is already %s", ErrInvalidInput, candidateID, candidate.Status)
	}
	return candidate, nil
}
