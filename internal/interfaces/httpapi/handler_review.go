package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/usecase"
)

type candidateDTO struct {
	CandidateID  string     `json:"candidate_id"`
	ImportID     string     `json:"import_id"`
	RawName      string     `json:"raw_name"`
	Team         string     `json:"team"`
	Position     string     `json:"position"`
	SuggestedKey string     `json:"suggested_key,omitempty"`
	Score        float64    `json:"score"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

func candidateToDTO(c identity.UnmatchedCandidate) candidateDTO {
	return candidateDTO{
		CandidateID:  c.ID,
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

type mapCandidateRequest struct {
	CanonicalKey string `json:"canonical_key" validate:"required"`
}

func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCandidates")
	defer span.End()

	importID := r.PathValue("importID")
	status := identity.CandidateStatus(strings.TrimSpace(r.URL.Query().Get("status")))

	candidates, err := h.reviewService.ListCandidates(ctx, importID, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list candidates failed", "import_id", importID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]candidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) MapCandidate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MapCandidate")
	defer span.End()

	candidateID := r.PathValue("candidateID")

	var req mapCandidateRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: canonical_key is required", usecase.ErrInvalidInput))
		return
	}

	mapped, err := h.reviewService.MapCandidate(ctx, candidateID, req.CanonicalKey)
	if err != nil {
		h.logger.WarnContext(ctx, "map candidate failed", "candidate_id", candidateID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidateToDTO(mapped))
}

func (h *Handler) IgnoreCandidate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IgnoreCandidate")
	defer span.End()

	candidateID := r.PathValue("candidateID")

	ignored, err := h.reviewService.IgnoreCandidate(ctx, candidateID)
	if err != nil {
		h.logger.WarnContext(ctx, "ignore candidate failed", "candidate_id", candidateID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidateToDTO(ignored))
}
