package handlers

import (
	"net/http"

	"github.com/swaggo/swag"
)

// HandleAPIDocs serves the OpenAPI document registered by the docs package.
func HandleAPIDocs(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "API documentation is not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
