package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	swaggerJSONPath = "/api/swagger.json"
	docsPath        = "/api/docs"
)

// DocsHandler serves the OpenAPI document and the Swagger UI pointed at it.
type DocsHandler struct {
	*Handler
	document []byte
	ui       http.HandlerFunc
}

func NewDocsHandler(base *Handler, document []byte) *DocsHandler {
	return &DocsHandler{
		Handler:  base,
		document: document,
		ui:       httpSwagger.Handler(httpSwagger.URL(swaggerJSONPath)),
	}
}

func (h *DocsHandler) HandleSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.document); err != nil {
		h.logger.WithError(err).Error("Failed to write OpenAPI document")
	}
}

func (h *DocsHandler) HandleUI(w http.ResponseWriter, r *http.Request) {
	h.ui(w, r)
}

func (h *DocsHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, docsPath+"/index.html", http.StatusMovedPermanently)
}
