package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skincat/internal/catalog"
	applog "skincat/internal/log"
)

// ItemIDParam is the route parameter carrying the item id of a detail request.
const ItemIDParam = "itemID"

// Products serves GET /products: one page of items ordered for the requested
// skin type.
func Products(w http.ResponseWriter, r *http.Request) {
	if catalogService == nil {
		applog.Debug(r.Context(), "product list request without catalog")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	records, err := catalogService.Products(r.Context(), r.URL.Query())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	applog.Debug(r.Context(), "product list served", "count", len(records))
	writeJSON(w, http.StatusOK, records)
}

// Product serves GET /product/{itemID}: the item followed by recommendations
// from its category.
func Product(w http.ResponseWriter, r *http.Request) {
	if catalogService == nil {
		applog.Debug(r.Context(), "product detail request without catalog")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	rawID := chi.URLParam(r, ItemIDParam)
	resp, err := catalogService.Product(r.Context(), rawID, r.URL.Query())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	applog.Debug(r.Context(), "product detail served", "id", resp.Detail.ID, "recommendations", len(resp.Recommendations))
	writeJSON(w, http.StatusOK, resp)
}

func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case catalog.IsClientError(err):
		applog.Debug(r.Context(), "rejected catalog request", "error", err, "query", r.URL.RawQuery)
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		applog.Debug(r.Context(), "catalog item not found", "path", r.URL.Path)
		writeJSONError(w, http.StatusNotFound, err.Error())
	default:
		applog.Error(r.Context(), "catalog request failed", "error", err, "path", r.URL.Path)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
