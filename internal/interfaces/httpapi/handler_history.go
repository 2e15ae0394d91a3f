package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
)

type importRecordDTO struct {
	ImportID          string                  `json:"import_id"`
	Scope             string                  `json:"scope"`
	Source            string                  `json:"source"`
	FileName          string                  `json:"file_name"`
	PersistedCount    int                     `json:"persisted_count"`
	Summary           importrun.Summary       `json:"summary"`
	DeltaSummary      *importrun.DeltaSummary `json:"delta_summary"`
	PendingCandidates int                     `json:"pending_candidates"`
	CreatedAt         time.Time               `json:"created_at"`
}

type poolEntryDTO struct {
	IdentityKey string    `json:"identity_key"`
	Scope       string    `json:"scope"`
	Source      string    `json:"source"`
	DisplayName string    `json:"display_name"`
	Team        string    `json:"team"`
	Position    string    `json:"position"`
	Salary      int       `json:"salary"`
	Projection  float64   `json:"projection"`
	Ownership   float64   `json:"ownership"`
	Ceiling     *float64  `json:"ceiling"`
	Floor       *float64  `json:"floor"`
	Notes       string    `json:"notes,omitempty"`
	ImportedAt  time.Time `json:"imported_at"`
}

func (h *Handler) ListImports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListImports")
	defer span.End()

	scope := r.PathValue("scope")
	source := pool.Source(strings.TrimSpace(r.URL.Query().Get("source")))

	items, err := h.historyService.ListImports(ctx, scope, source)
	if err != nil {
		h.logger.WarnContext(ctx, "list imports failed", "scope", scope, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]importRecordDTO, 0, len(items))
	for _, item := range items {
		out = append(out, importRecordDTO{
			ImportID:          item.Record.ID,
			Scope:             item.Record.Scope,
			Source:            string(item.Record.Source),
			FileName:          item.Record.FileName,
			PersistedCount:    item.Record.PersistedCount,
			Summary:           item.Record.Summary,
			DeltaSummary:      item.Deltas,
			PendingCandidates: item.PendingCandidates,
			CreatedAt:         item.Record.CreatedAt,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPool")
	defer span.End()

	scope := r.PathValue("scope")
	entries, err := h.historyService.ListPool(ctx, scope)
	if err != nil {
		h.logger.WarnContext(ctx, "list pool failed", "scope", scope, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]poolEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, poolEntryDTO{
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
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CompareImports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareImports")
	defer span.End()

	query := r.URL.Query()
	fromID := query.Get("from")
	toID := query.Get("to")

	comparison, err := h.historyService.Compare(ctx, fromID, toID)
	if err != nil {
		h.logger.WarnContext(ctx, "compare imports failed", "from", fromID, "to", toID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparison)
}
