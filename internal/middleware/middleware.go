// Package middleware holds the http.Handler decorators the app wraps
// around its router: CORS, request logging and cookie authentication.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap applies mws to h from the inside out, so the last middleware in
// the list sees the request first.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}
