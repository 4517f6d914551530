// Package module defines the contract an API module satisfies and a port registry
package module

import (
	phttp "pgnframe/internal/platform/net/http"
)

// Module is mounted by the API and may expose ports for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
