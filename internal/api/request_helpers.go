package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/domain"
)

// getPathID extracts and parses the todo ID path parameter.
func getPathID(r *http.Request) (int32, error) {
	return domain.ParseID(chi.URLParam(r, "id"))
}

// getPathStatus extracts and parses the status path parameter.
func getPathStatus(r *http.Request) (domain.Status, error) {
	return domain.ParseStatus(chi.URLParam(r, "status"))
}
