package handlers

import "skincat/internal/catalog"

var catalogService *catalog.Service

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(service *catalog.Service) {
	catalogService = service
}
