package http

import (
	"net/http"
	"strings"

	apperrors "github.com/utafrali/storefront-api/pkg/errors"
	"github.com/utafrali/storefront-api/pkg/httputil"
)

var errUnsupportedMediaType = &apperrors.AppError{
	Code:    "UNSUPPORTED_MEDIA_TYPE",
	Message: "Content-Type must be application/json",
	Status:  http.StatusUnsupportedMediaType,
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				httputil.WriteError(w, r, errUnsupportedMediaType, nil)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
