package httpapi

import (
	"log/slog"
	"net/http"
)

func NewRouter(
	handler *Handler,
	logger *slog.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.HandleFunc("POST /v1/scopes/{scope}/imports/roster", handler.ImportRoster)
	mux.HandleFunc("POST /v1/scopes/{scope}/imports/salary", handler.ImportSalary)
	mux.HandleFunc("POST /v1/imports/history", handler.ImportHistory)

	mux.HandleFunc("GET /v1/scopes/{scope}/imports", handler.ListImports)
	mux.HandleFunc("GET /v1/scopes/{scope}/pool", handler.ListPool)
	mux.HandleFunc("GET /v1/imports/compare", handler.CompareImports)

	mux.HandleFunc("GET /v1/imports/{importID}/candidates", handler.ListCandidates)
	mux.HandleFunc("POST /v1/candidates/{candidateID}/map", handler.MapCandidate)
	mux.HandleFunc("POST /v1/candidates/{candidateID}/ignore", handler.IgnoreCandidate)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
