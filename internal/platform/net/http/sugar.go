package http

import (
	"net/http"

	perr "pgnframe/internal/platform/errors"
	"pgnframe/internal/platform/net/http/bind"
)

// Get mounts fn for GET, its result goes through the envelope
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response {
		return result(fn(req))
	}))
}

// GetQuery mounts fn for GET after decoding and validating the query string into T
func GetQuery[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response {
		in, err := bind.ParseQuery[T](req)
		if err != nil {
			return Error(err)
		}
		return result(fn(req, in))
	}))
}

// NotFound makes unmatched paths under r answer with a 404 envelope
func NotFound(r Router) {
	r.NotFound(Handle(func(req *http.Request) Response {
		return Error(perr.NotFoundf("no route for %s %s", req.Method, req.URL.Path))
	}))
}

// result accepts either a finished Response or a payload for a 200
func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
