// Package middleware integrates guard helpers with net/http handlers.
// The returned wrappers are plain func(http.Handler) http.Handler values and
// compose with any router that accepts standard middleware.
package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	guard "github.com/guardkit/guard"
)

// DefaultMaxBody caps request bodies read by ValidateBody when no Options
// override it.
const DefaultMaxBody int64 = 1 << 20

// Options configures body validation.
type Options struct {
	// MaxBody limits the request body size in bytes; 0 means DefaultMaxBody.
	MaxBody int64
}

// ctxKeyValue is a typed context key for storing a validated T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyValue[T any] struct{}

// ContextWithValue attaches a validated value to the context.
func ContextWithValue[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValue[T]{}, v)
}

// ValueFromContext retrieves a validated value stored by ValidateBody.
func ValueFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValue[T]{}).(T)
	return v, ok
}

// ValidateBody decodes and validates the JSON request body with h, stores
// the typed value in the request context, and answers 400 with a JSON error
// payload when decoding or validation fails.
func ValidateBody[T any](h guard.Helper[T], opts ...Options) func(http.Handler) http.Handler {
	maxBody := DefaultMaxBody
	if len(opts) > 0 && opts[len(opts)-1].MaxBody > 0 {
		maxBody = opts[len(opts)-1].MaxBody
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
			if err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				// Client abort, transport error: the size cap is not at fault.
				writeError(w, http.StatusBadRequest, "cannot read request body")
				return
			}
			v, err := h.Parse(r.Context(), body)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), v)))
		})
	}
}

// ErrorPayload shapes a validation error for JSON responses.
func ErrorPayload(msg string) map[string]any {
	return map[string]any{"error": msg}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorPayload(msg))
}
