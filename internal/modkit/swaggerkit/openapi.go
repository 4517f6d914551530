package swaggerkit

import (
	"encoding/json"
	"strings"

	perr "pgnframe/internal/platform/errors"
)

// readDoc parses whatever docReader currently serves
func readDoc() (map[string]any, error) {
	raw, err := docReader()
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// decorate lifts the document to OAS 3.0.3 and adds the error envelope
// to every operation that does not declare its own
func decorate(doc map[string]any) {
	ensureServers(doc, "/api/v1")
	ensureEnvelopeSchema(doc)
	for code, example := range map[string]map[string]any{
		"400": {"status_code": 400, "status": "Bad Request", "code": perr.ErrorCodeValidation, "error": "limit must be at most 1000", "field": "limit"},
		"404": {"status_code": 404, "status": "Not Found", "code": perr.ErrorCodeNotFound, "error": "run not found"},
		"500": {"status_code": 500, "status": "Internal Server Error", "code": perr.ErrorCodePanic, "error": "panic recovered"},
	} {
		addDefaultResponse(doc, code, example)
	}
}

// ensureServers makes sure the doc is OAS3 with a servers array
// the UI cannot render 3.1 yet, so it is pinned to 3.0.3
func ensureServers(doc map[string]any, url string) {
	if _, ok := doc["swagger"]; ok {
		delete(doc, "swagger")
		doc["openapi"] = "3.0.3"
	}
	if v, ok := doc["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": url}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureEnvelopeSchema mirrors phttp.Envelope for error bodies
func ensureEnvelopeSchema(doc map[string]any) {
	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["Envelope"]; ok {
		return
	}
	schemas["Envelope"] = map[string]any{
		"type":        "object",
		"description": "Standard response envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func addDefaultResponse(doc map[string]any, code string, example map[string]any) {
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": example["status"],
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/Envelope"},
				"example": example,
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			if _, exists := responses[code]; !exists {
				responses[code] = resp
			}
		}
	}
}
