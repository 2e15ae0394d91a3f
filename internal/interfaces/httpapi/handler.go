package httpapi

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"

	"github.com/dfstools/poolimport/internal/usecase"
)

const defaultMaxFileBytes = 16 << 20

type Handler struct {
	importService  *usecase.ImportService
	historyService *usecase.HistoryService
	reviewService  *usecase.ReviewService
	logger         *slog.Logger
	validator      *validator.Validate
	maxFileBytes   int64
}

func NewHandler(
	importService *usecase.ImportService,
	historyService *usecase.HistoryService,
	reviewService *usecase.ReviewService,
	logger *slog.Logger,
	maxFileBytes int64,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxFileBytes <= 0 {
		maxFileBytes = defaultMaxFileBytes
	}

	return &Handler{
		importService:  importService,
		historyService: historyService,
		reviewService:  reviewService,
		logger:         logger,
		validator:      validator.New(),
		maxFileBytes:   maxFileBytes,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// readUpload pulls the multipart "file" part into memory through a pooled
// buffer. Workbook parsing needs the whole payload anyway.
func (h *Handler) readUpload(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		return nil, "", fmt.Errorf("%w: parse multipart form: %v", usecase.ErrInvalidInput, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: multipart part \"file\" is required", usecase.ErrInvalidInput)
	}
	defer file.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(file, h.maxFileBytes+1)); err != nil {
		return nil, "", fmt.Errorf("%w: read upload: %v", usecase.ErrInvalidInput, err)
	}
	if int64(buf.Len()) > h.maxFileBytes {
		return nil, "", fmt.Errorf("%w: file exceeds %d bytes", usecase.ErrInvalidInput, h.maxFileBytes)
	}

	data := make([]byte, buf.Len())
	copy(data, buf.B)
	return data, header.Filename, nil
}
