package guard

import "context"

// Field pairs a declared field name with the checker validating its value.
type Field struct {
	Name    string
	checker Checker
}

// F declares one object field.
func F(name string, c Checker) Field { return Field{Name: name, checker: c} }

// Object returns a helper for named-field composition. Fields are validated
// in declaration order; an absent key yields the absence marker, and the
// first failing field stops the scan with its error annotated by the field
// name.
//
// Object is open: keys present in the input but not declared are ignored.
// Arrays also qualify as keyed containers (numeric field names resolve as
// indices); this permissiveness is intentional.
func Object(fields ...Field) Helper[map[string]any] {
	return Helper[map[string]any]{
		check: func(ctx context.Context, v any) *ErrorBuilder {
			if !isKeyedContainer(v) {
				return Errorf("Expected object, got %s", jsonText(v))
			}
			for _, f := range fields {
				if eb := f.checker.Check(ctx, lookupKey(v, f.Name)); eb != nil {
					return eb.ErrIn(f.Name)
				}
			}
			return nil
		},
		convert: func(ctx context.Context, v any) (map[string]any, *ErrorBuilder) {
			if m, ok := v.(map[string]any); ok {
				return m, nil
			}
			// Array input: project the declared fields into a fresh map.
			out := make(map[string]any, len(fields))
			for _, f := range fields {
				if fv := lookupKey(v, f.Name); !IsAbsent(fv) {
					out[f.Name] = fv
				}
			}
			return out, nil
		},
	}
}
