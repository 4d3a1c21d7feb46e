package guard

import (
	"context"
	"math"
	"strings"

	json "github.com/goccy/go-json"
)

// String returns a helper accepting string values.
func String() Helper[string] {
	return Helper[string]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if _, ok := v.(string); !ok {
				return Errorf("Expected string, got %s", jsonText(v))
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (string, *ErrorBuilder) {
			return v.(string), nil
		},
	}
}

// Number returns a helper accepting numeric values. JSON input decodes to
// float64; direct int and int64 values are accepted for hand-built inputs.
func Number() Helper[float64] {
	return Helper[float64]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if _, ok := numericValue(v); !ok {
				return Errorf("Expected number, got %s", jsonText(v))
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (float64, *ErrorBuilder) {
			f, _ := numericValue(v)
			return f, nil
		},
	}
}

// maxExactInt bounds the integers float64 represents exactly (2^53).
// Beyond it a decoded number cannot be trusted as an integer, and the int64
// conversion would be implementation-defined.
const maxExactInt = float64(1 << 53)

// Int returns a helper accepting integer-valued numbers only. Fractional
// input fails, as do magnitudes beyond 2^53 where float64 loses integer
// exactness; this is a narrower classification, not a coercion.
func Int() Helper[int64] {
	return Helper[int64]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			f, ok := numericValue(v)
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
				return Errorf("Expected integer, got %s", jsonText(v))
			}
			if f < -maxExactInt || f > maxExactInt {
				return Errorf("Expected integer, got %s", jsonText(v))
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (int64, *ErrorBuilder) {
			f, _ := numericValue(v)
			return int64(f), nil
		},
	}
}

// Bool returns a helper accepting boolean values.
func Bool() Helper[bool] {
	return Helper[bool]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if _, ok := v.(bool); !ok {
				return Errorf("Expected boolean, got %s", jsonText(v))
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (bool, *ErrorBuilder) {
			return v.(bool), nil
		},
	}
}

// Null returns a helper accepting exactly JSON null.
func Null() Helper[any] {
	return Helper[any]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if v != nil {
				return Errorf("Expected null, got %s", jsonText(v))
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (any, *ErrorBuilder) { return nil, nil },
	}
}

// Undefined returns a helper accepting exactly the absence marker. Useful as
// an Or alternative when a field must be allowed to be missing.
func Undefined() Helper[any] {
	return Helper[any]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if !IsAbsent(v) {
				return Errorf("Expected undefined, got %s", jsonText(v))
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (any, *ErrorBuilder) { return Absent, nil },
	}
}

// Any returns a helper accepting every present value.
func Any() Helper[any] {
	return Helper[any]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if IsAbsent(v) {
				return NewError("Expected a value, got undefined")
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (any, *ErrorBuilder) { return v, nil },
	}
}

// Literal returns a helper accepting exactly the supplied candidates,
// compared by strict equality (numeric candidates match by numeric value so
// JSON-decoded float64 input matches Go integer literals). The failure
// message lists every candidate in declaration order as canonical JSON.
func Literal[T comparable](candidates ...T) Helper[T] {
	rendered := make([]string, len(candidates))
	for i, c := range candidates {
		rendered[i] = jsonText(c)
	}
	expected := strings.Join(rendered, " | ")
	return Helper[T]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			for _, c := range candidates {
				if literalMatches(v, c) {
					return nil
				}
			}
			return Errorf("Expected %s, got %s", expected, jsonText(v))
		},
		convert: func(ctx context.Context, v any) (T, *ErrorBuilder) {
			for _, c := range candidates {
				if literalMatches(v, c) {
					return c, nil
				}
			}
			var zero T
			return zero, Errorf("Expected %s, got %s", expected, jsonText(v))
		},
	}
}

func literalMatches(v any, candidate any) bool {
	if cf, ok := numericValue(candidate); ok {
		vf, vok := numericValue(v)
		return vok && vf == cf
	}
	return v == candidate
}

// numericValue unifies the numeric representations a decoded or hand-built
// value may carry.
func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
