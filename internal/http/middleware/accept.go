package middleware

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/tuanvumaihuynh/brewery/internal/apperr"
)

// ErrorHandlerFunc renders an error response.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// AcceptJSON rejects requests whose Accept header rules out a JSON response.
// A request without an Accept header accepts anything.
func AcceptJSON(onError ErrorHandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !AcceptsJSON(r.Header.Values("Accept")) {
				onError(w, r, apperr.NotAcceptableErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AcceptsJSON reports whether any of the media ranges admits
// application/json with a non-zero quality.
func AcceptsJSON(accept []string) bool {
	if len(accept) == 0 {
		return true
	}

	for _, header := range accept {
		for _, part := range strings.Split(header, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			mediaType, params, err := mime.ParseMediaType(part)
			if err != nil {
				continue
			}

			if q, ok := params["q"]; ok {
				if v, err := strconv.ParseFloat(q, 64); err != nil || v <= 0 {
					continue
				}
			}

			switch mediaType {
			case "application/json", "application/*", "*/*":
				return true
			}
		}
	}

	return false
}
