package httpapi

import (
	"net/http"
	"strings"

	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
	"github.com/dfstools/poolimport/internal/usecase"
)

type importResultDTO struct {
	ImportID       string                  `json:"import_id"`
	PersistedCount int                     `json:"persisted_count"`
	UnmatchedCount int                     `json:"unmatched_count"`
	Summary        importrun.Summary       `json:"summary"`
	DeltaSummary   *importrun.DeltaSummary `json:"delta_summary"`
}

func importResultToDTO(result *usecase.ImportResult) importResultDTO {
	return importResultDTO{
		ImportID:       result.ImportID,
		PersistedCount: result.PersistedCount,
		UnmatchedCount: result.UnmatchedCount,
		Summary:        result.Summary,
		DeltaSummary:   result.Deltas,
	}
}

func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRoster")
	defer span.End()

	scope := r.PathValue("scope")
	data, fileName, err := h.readUpload(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportRoster(ctx, scope, fileName, data)
	if err != nil {
		h.logger.WarnContext(ctx, "roster import failed", "scope", scope, "file", fileName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, importResultToDTO(result))
}

func (h *Handler) ImportSalary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSalary")
	defer span.End()

	scope := r.PathValue("scope")
	data, fileName, err := h.readUpload(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sheet := pool.ProjectionSheet(strings.TrimSpace(r.FormValue("projection_sheet")))
	result, err := h.importService.ImportSalary(ctx, scope, fileName, sheet, data)
	if err != nil {
		h.logger.WarnContext(ctx, "salary import failed", "scope", scope, "file", fileName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, importResultToDTO(result))
}

func (h *Handler) ImportHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportHistory")
	defer span.End()

	data, fileName, err := h.readUpload(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportHistory(ctx, fileName, data)
	if err != nil {
		h.logger.WarnContext(ctx, "history import failed", "file", fileName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, importResultToDTO(result))
}
