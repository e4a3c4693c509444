package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/metrics"
	"github.com/nijaru/video-api/middleware"
	"github.com/sirupsen/logrus"
)

// maxBodySize bounds request bodies; a video record is a few dozen bytes.
const maxBodySize = 1 << 20

// Handler carries what every resource handler needs to answer a request.
type Handler struct {
	logger  *logrus.Logger
	metrics *metrics.Collector
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		middleware.GetLogger(r.Context()).WithError(err).Error("Failed to encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	msg := "Internal server error"
	op := "unknown"

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		code = appErr.Code
		msg = appErr.Message
		if appErr.Op != "" {
			op = appErr.Op
		}
	}

	entry := middleware.GetLogger(r.Context()).WithFields(logrus.Fields{
		"error":  err,
		"status": code,
		"op":     op,
	})

	if code >= http.StatusInternalServerError {
		entry.Error("Request failed")
		if h.metrics != nil {
			h.metrics.StoreErrors.WithLabelValues(op).Inc()
		}
		// Internal causes are logged, never sent to the client.
		msg = "Internal server error"
	} else {
		entry.Debug("Request rejected")
	}

	h.respondJSON(w, r, code, ErrorResponse{Message: msg})
}

// readBody reads the whole request body, bounded by maxBodySize.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	const op = "api.readBody"

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.InvalidInput(op, err, "Request body too large")
		}
		return nil, errors.InvalidInput(op, err, "Failed to read request body")
	}
	return body, nil
}
