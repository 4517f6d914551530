//go:build swag

package swaggerkit

import (
	"github.com/swaggo/swag/v2"

	// generated by: swag init -g internal/services/api/api.go -o internal/services/api/docs --instanceName api --v3.1
	_ "pgnframe/internal/services/api/docs"
)

// docReader returns the document the generated package registered
var docReader = func() (string, error) { return swag.ReadDoc("api") }
