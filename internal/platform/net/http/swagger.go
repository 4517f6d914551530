package http

import (
	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger mounts the swagger UI under base if enabled by caller
// the UI loads its document from base/doc.json, the caller serves that route
func MountSwagger(r Router, base string, enabled bool) {
	if !enabled {
		return
	}
	r.Get(base+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(base+"/doc.json"),
	))
}
