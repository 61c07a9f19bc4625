package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "rocklog/internal/errors"
	"rocklog/internal/geomech"
	"rocklog/internal/ingest"
	"rocklog/internal/services"
	"rocklog/internal/validation"
)

// ComputeServiceInterface is the service contract the handler needs.
type ComputeServiceInterface interface {
	Compute(ctx context.Context, req services.ComputeRequest) (*services.ComputeResult, error)
}

// ComputeHandler handles log table uploads.
type ComputeHandler struct {
	service        ComputeServiceInterface
	validator      *validation.FileValidator
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewComputeHandler creates a new compute handler
func NewComputeHandler(service ComputeServiceInterface, validator *validation.FileValidator, maxUploadBytes int64, logger *slog.Logger) *ComputeHandler {
	return &ComputeHandler{
		service:        service,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "compute_handler")),
	}
}

// Routes returns the compute routes
func (h *ComputeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.Compute)
	return r
}

// computeResponse is the success wire shape: the derived samples in
// canonical field order.
type computeResponse struct {
	Results []geomech.DerivedSample `json:"results"`
}

// overrideFields maps multipart form fields to the canonical fields
// they pin in the column mapping.
var overrideFields = map[string]geomech.Field{
	"depth_column":   geomech.FieldDepth,
	"density_column": geomech.FieldDensity,
	"vp_column":      geomech.FieldVp,
	"vs_column":      geomech.FieldVs,
}

// Compute handles POST /api/compute: a multipart upload carrying the
// log table under "file" plus optional column override fields.
func (h *ComputeHandler) Compute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, apierrors.New(http.StatusBadRequest, `multipart field "file" is required`))
		return
	}
	defer file.Close()

	if err := h.validator.ValidateFilename(header.Filename); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateUploadSize(header.Size, h.maxUploadBytes); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	overrides := geomech.ColumnMapping{}
	for field, canonical := range overrideFields {
		if v := r.FormValue(field); v != "" {
			overrides[canonical] = v
		}
	}

	result, err := h.service.Compute(ctx, services.ComputeRequest{
		Filename:  header.Filename,
		Reader:    file,
		Overrides: overrides,
	})
	if err != nil {
		h.writeComputeError(ctx, w, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, computeResponse{Results: result.Samples})
}

// writeComputeError maps pipeline failures to the error wire shape.
// The two table-level failures are the client's problem (422); decode
// failures are a bad upload (400); anything else is ours (500).
func (h *ComputeHandler) writeComputeError(ctx context.Context, w http.ResponseWriter, err error) {
	var missing *geomech.MissingColumnsError
	var noRows *geomech.NoValidRowsError
	var decodeErr *ingest.DecodeError

	switch {
	case errors.As(err, &missing), errors.As(err, &noRows):
		apierrors.WriteError(w, apierrors.UnprocessableUpload(err))
	case errors.As(err, &decodeErr):
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
	default:
		h.logger.ErrorContext(ctx, "compute failed",
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.ErrInternalServer)
	}
}
