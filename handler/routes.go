package handler

import (
	"net/http"

	"github.com/CWSHBR/echoing/internal/server"
)

// NewEchoRoute registers the echo handler as the catch-all route, so
// every path and method ends up echoed.
func NewEchoRoute(handler *EchoHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("/", handler)
}

func NewHealthRoute() server.HttpHandlerResult {
	return server.AsHttpHandler("/health", http.HandlerFunc(HealthHandler))
}
