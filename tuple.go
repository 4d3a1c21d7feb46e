package guard

import "context"

// Tuple returns a helper for fixed-length ordered composition. The input
// must be a sequence of exactly len(items) elements; a length mismatch fails
// with "tuple length <n>, got <actual>" and no path segment. Each position is
// then validated in order, the first failure annotated with its index.
func Tuple(items ...Checker) Helper[[]any] {
	return Helper[[]any]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			arr, ok := v.([]any)
			if !ok {
				return Errorf("Expected array, got %s", jsonText(v))
			}
			if len(arr) != len(items) {
				return Errorf("tuple length %d, got %d", len(items), len(arr))
			}
			for i, item := range items {
				if eb := item.Check(ctx, arr[i]); eb != nil {
					return eb.ErrAt(i)
				}
			}
			return nil
		},
		convert: func(ctx context.Context, v any) ([]any, *ErrorBuilder) {
			return v.([]any), nil
		},
	}
}
