package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/CWSHBR/echoing/internal/echo"
)

type EchoHandlerParams struct {
	fx.In

	Log *zap.Logger
}

func NewEchoHandler(params EchoHandlerParams) *EchoHandler {
	return &EchoHandler{
		log: params.Log,
	}
}

// EchoHandler answers any request on any path with HTTP 200 and a
// JSON document describing the request it received.
type EchoHandler struct {
	log *zap.Logger
}

func (h *EchoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	// A truncated read is still echoed: whatever arrived before the
	// failure is described, and the response stays 200.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read body", zap.Error(err))
	}

	doc, err := echo.Describe(r, body)
	if err != nil {
		log.Warn("unexpected error parsing body as json", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}
}
