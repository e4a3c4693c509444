package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nijaru/video-api/services/video"
	"github.com/nijaru/video-api/validation"
)

type VideoHandler struct {
	*Handler
	service   video.Service
	validator *validation.Validator
}

func NewVideoHandler(base *Handler, service video.Service, validator *validation.Validator) *VideoHandler {
	return &VideoHandler{
		Handler:   base,
		service:   service,
		validator: validator,
	}
}

var bodyRequestOpts = validation.RequestValidationOpts{
	MaxContentLength: maxBodySize,
}

func (h *VideoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := validation.ParsePageRequest(r.URL.Query())

	result, err := h.service.List(r.Context(), page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, result)
}

func (h *VideoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, v)
}

func (h *VideoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, body, ok := h.readIDAndBody(w, r)
	if !ok {
		return
	}

	v, err := h.service.Create(r.Context(), id, body)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, v)
}

func (h *VideoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, body, ok := h.readIDAndBody(w, r)
	if !ok {
		return
	}

	v, err := h.service.Update(r.Context(), id, body)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, v)
}

func (h *VideoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readIDAndBody resolves the path id and reads the request body, answering
// the request itself when either fails.
func (h *VideoHandler) readIDAndBody(w http.ResponseWriter, r *http.Request) (int64, []byte, bool) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return 0, nil, false
	}

	if err := h.validator.ValidateRequest(r, bodyRequestOpts); err != nil {
		h.respondError(w, r, err)
		return 0, nil, false
	}

	body, err := readBody(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return 0, nil, false
	}

	return id, body, true
}
