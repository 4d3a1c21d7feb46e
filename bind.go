package guard

import (
	"context"

	json "github.com/goccy/go-json"
)

// Bind projects values accepted by c onto the concrete Go type T via a
// serialization round trip. The inner checker still decides validity; Bind
// only changes how the accepted value is narrowed, so path-qualified errors
// come through unchanged.
//
//	type Message struct {
//		Role    string `json:"role"`
//		Content string `json:"content"`
//	}
//	msg := guard.Bind[Message](guard.Object(
//		guard.F("role", guard.Literal("user", "assistant", "system")),
//		guard.F("content", guard.String()),
//	))
func Bind[T any](c Checker) Helper[T] {
	return Helper[T]{
		check: c.Check,
		convert: func(ctx context.Context, v any) (T, *ErrorBuilder) {
			var out T
			b, err := json.Marshal(v)
			if err != nil {
				return out, Errorf("cannot bind value: %v", err)
			}
			if err := json.Unmarshal(b, &out); err != nil {
				return out, Errorf("cannot bind value: %v", err)
			}
			return out, nil
		},
	}
}
