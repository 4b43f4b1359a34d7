package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/0xilhan/Cult-scaner-v1/internal/api/middleware"
	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/0xilhan/Cult-scaner-v1/internal/scanner"
	"github.com/0xilhan/Cult-scaner-v1/internal/session"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

type Handler struct {
	tracker *session.Tracker
	version string
	logger  *zerolog.Logger
}

func NewHandler(tracker *session.Tracker, version string, logger *zerolog.Logger) *Handler {
	return &Handler{
		tracker: tracker,
		version: version,
		logger:  logger,
	}
}

// POST /api/v1/scan
// Body: ScanRequest
// Returns: Result
func (h *Handler) Scan(req *restful.Request, resp *restful.Response) {
	var scanRequest models.ScanRequest
	if err := req.ReadEntity(&scanRequest); err != nil {
		if errors.Is(err, io.EOF) {
			middleware.HandleError(resp, middleware.ErrMissingBody, http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if err := scanRequest.Validate(); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", scanRequest.RequestID).
		Str("protocol", scanRequest.Protocol).
		Msg("Start scan")

	result, err := h.tracker.Run(req.Request.Context(), scanRequest.Protocol)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("protocol", scanRequest.Protocol).
			Msg("Scan failed")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/scan/status
func (h *Handler) Status(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, h.tracker.Snapshot())
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrMissingCredential):
		return http.StatusServiceUnavailable
	case errors.Is(err, scanner.ErrUnparseableReport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
