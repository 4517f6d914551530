// Package swaggerkit mounts the swagger UI and its JSON document
package swaggerkit

import (
	"encoding/json"
	"net/http"

	phttp "pgnframe/internal/platform/net/http"
)

// DocsPath is where the UI and doc.json live
const DocsPath = "/api/docs"

// Mount the Swagger UI and its JSON document if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON)
	phttp.MountSwagger(r, DocsPath, true)
}

// serveDocJSON decorates the current document and writes it
func serveDocJSON(w http.ResponseWriter, _ *http.Request) {
	doc, err := readDoc()
	if err != nil {
		http.Error(w, "openapi document unreadable", http.StatusInternalServerError)
		return
	}
	decorate(doc)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(doc)
}
