package guard

import (
	"context"
	"sort"

	json "github.com/goccy/go-json"
)

// checkFunc inspects an unknown value and reports the first failure, or nil.
type checkFunc func(ctx context.Context, v any) *ErrorBuilder

// convertFunc narrows a value that already passed the paired check.
type convertFunc[T any] func(ctx context.Context, v any) (T, *ErrorBuilder)

// Helper validates unknown values (typically decoded from JSON) and narrows
// them to T. A Helper is an immutable value: combinators build new helpers
// that close over their inputs, which continue to exist independently.
// Helpers are safe for concurrent use.
type Helper[T any] struct {
	check   checkFunc
	convert convertFunc[T]
}

// Checker is the type-erased view of a Helper. Heterogeneous combinators
// (Object, Tuple, Or, And) are written against it so they compose helpers of
// different element types.
type Checker interface {
	Check(ctx context.Context, v any) *ErrorBuilder
}

// Check runs the helper's check function without narrowing.
func (h Helper[T]) Check(ctx context.Context, v any) *ErrorBuilder { return h.check(ctx, v) }

// ---- terminal operations ----

// Validate checks v and, on success, returns it narrowed to T. The input is
// not transformed: narrowing converts the decoded representation, it never
// rewrites values.
func (h Helper[T]) Validate(ctx context.Context, v any) (T, error) {
	if eb := h.check(ctx, v); eb != nil {
		var zero T
		return zero, eb
	}
	out, eb := h.convert(ctx, v)
	if eb != nil {
		var zero T
		return zero, eb
	}
	return out, nil
}

// Guard reports whether v conforms to the helper. Optional callbacks receive
// the final error before Guard returns false.
func (h Helper[T]) Guard(ctx context.Context, v any, onErr ...func(error)) bool {
	eb := h.check(ctx, v)
	if eb == nil {
		return true
	}
	for _, fn := range onErr {
		fn(eb)
	}
	return false
}

// Parse decodes data as JSON and validates the result. Decode failures and
// validation failures share the same error channel; callers distinguish them
// only by message.
func (h Helper[T]) Parse(ctx context.Context, data []byte) (T, error) {
	v, err := decodeJSON(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return h.Validate(ctx, v)
}

// ParseString is Parse over a string payload.
func (h Helper[T]) ParseString(ctx context.Context, text string) (T, error) {
	return h.Parse(ctx, []byte(text))
}

// ParseYAML decodes data as YAML, normalizes it to the JSON data model, and
// validates the result.
func (h Helper[T]) ParseYAML(ctx context.Context, data []byte) (T, error) {
	v, err := decodeYAML(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return h.Validate(ctx, v)
}

// ParseWithDefault parses data, returning a deep copy of def on any decode or
// validation failure. The returned value never aliases def, so mutating it
// cannot affect other calls' defaults. The no-aliasing guarantee holds for
// defaults representable in the serialization format; a default that cannot
// round-trip through it is returned as-is.
func (h Helper[T]) ParseWithDefault(ctx context.Context, data []byte, def T) T {
	v, err := h.Parse(ctx, data)
	if err != nil {
		return deepCopy(def)
	}
	return v
}

// Clone round-trips v through the serialization boundary and revalidates the
// result. This is deliberately not an identity copy: a value that serializes
// into a different shape than the helper accepts fails here, which is how
// callers learn of the fidelity loss.
func (h Helper[T]) Clone(ctx context.Context, v T) (T, error) {
	b, err := json.Marshal(v)
	if err != nil {
		var zero T
		return zero, err
	}
	raw, err := decodeJSON(b)
	if err != nil {
		var zero T
		return zero, err
	}
	return h.Validate(ctx, raw)
}

// ---- derived combinators ----

// Optional returns a helper that also accepts the absence marker. Inside
// Object this makes the field optional; an absent value narrows to T's zero
// value.
func (h Helper[T]) Optional() Helper[T] {
	inner := h
	return Helper[T]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if IsAbsent(v) {
				return nil
			}
			return inner.check(ctx, v)
		},
		convert: func(ctx context.Context, v any) (T, *ErrorBuilder) {
			if IsAbsent(v) {
				var zero T
				return zero, nil
			}
			return inner.convert(ctx, v)
		},
	}
}

// OrNull returns a helper that also accepts JSON null, narrowing it to T's
// zero value.
func (h Helper[T]) OrNull() Helper[T] {
	inner := h
	return Helper[T]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if v == nil {
				return nil
			}
			return inner.check(ctx, v)
		},
		convert: func(ctx context.Context, v any) (T, *ErrorBuilder) {
			if v == nil {
				var zero T
				return zero, nil
			}
			return inner.convert(ctx, v)
		},
	}
}

// Array returns a helper accepting sequences whose every element passes
// elem. The scan is index-ascending and stops at the first failing element,
// whose error is annotated with that index. Array is a free function (as is
// Record) because a method cannot name Helper[[]T] without instantiating the
// generic type cyclically.
func Array[T any](elem Helper[T]) Helper[[]T] {
	return Helper[[]T]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			arr, ok := v.([]any)
			if !ok {
				return Errorf("Expected array, got %s", jsonText(v))
			}
			for i := range arr {
				if eb := elem.check(ctx, arr[i]); eb != nil {
					return eb.ErrAt(i)
				}
			}
			return nil
		},
		convert: func(ctx context.Context, v any) ([]T, *ErrorBuilder) {
			arr := v.([]any)
			out := make([]T, 0, len(arr))
			for i := range arr {
				tv, eb := elem.convert(ctx, arr[i])
				if eb != nil {
					return nil, eb.ErrAt(i)
				}
				out = append(out, tv)
			}
			return out, nil
		},
	}
}

// Record returns a helper accepting string-keyed objects whose every value
// passes elem. Keys are scanned in sorted order so the reported failure is
// deterministic for a given input.
func Record[T any](elem Helper[T]) Helper[map[string]T] {
	return Helper[map[string]T]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			m, ok := v.(map[string]any)
			if !ok {
				return Errorf("Expected object, got %s", jsonText(v))
			}
			for _, k := range sortedKeys(m) {
				if eb := elem.check(ctx, m[k]); eb != nil {
					return eb.ErrIn(k)
				}
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (map[string]T, *ErrorBuilder) {
			m := v.(map[string]any)
			out := make(map[string]T, len(m))
			for _, k := range sortedKeys(m) {
				tv, eb := elem.convert(ctx, m[k])
				if eb != nil {
					return nil, eb.ErrIn(k)
				}
				out[k] = tv
			}
			return out, nil
		},
	}
}

// Or returns a helper accepting values that pass h or other; h is tried
// first. When both fail the combined message reads "(<self>) and (<other>)"
// with no path segment appended: a union failure is reported at the union's
// own level. The result is Helper[any] because Go carries no union types.
func (h Helper[T]) Or(other Checker) Helper[any] {
	self := h
	return Helper[any]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			first := self.check(ctx, v)
			if first == nil {
				return nil
			}
			second := other.Check(ctx, v)
			if second == nil {
				return nil
			}
			return Errorf("(%s) and (%s)", first.Render(), second.Render())
		},
		convert: func(ctx context.Context, v any) (any, *ErrorBuilder) { return v, nil },
	}
}

// And returns a helper accepting only values that pass both h and other.
// h is checked first and its failure short-circuits without evaluating other.
func (h Helper[T]) And(other Checker) Helper[T] {
	self := h
	return Helper[T]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if eb := self.check(ctx, v); eb != nil {
				return eb
			}
			return other.Check(ctx, v)
		},
		convert: self.convert,
	}
}

// Merge is And under the name used for object intersection. The two differ
// only in how the accepted type reads at call sites; validation behavior is
// identical.
func (h Helper[T]) Merge(other Checker) Helper[T] { return h.And(other) }

// Refine applies fn after h's own check succeeds. A refinement failure
// carries the caller-supplied message and is reported at this helper's own
// location: no path segment is appended here.
func (h Helper[T]) Refine(fn func(ctx context.Context, v T) *ErrorBuilder) Helper[T] {
	inner := h
	check := func(ctx context.Context, v any) *ErrorBuilder {
		if eb := inner.check(ctx, v); eb != nil {
			return eb
		}
		tv, eb := inner.convert(ctx, v)
		if eb != nil {
			return eb
		}
		return fn(ctx, tv)
	}
	return Helper[T]{check: check, convert: inner.convert}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
