package guard_test

import (
	"context"
	"testing"

	guard "github.com/guardkit/guard"
)

func person() guard.Helper[map[string]any] {
	return guard.Object(
		guard.F("name", guard.String()),
		guard.F("age", guard.Number()),
	)
}

func TestObject_MissingFieldReportsFieldPath(t *testing.T) {
	ctx := context.Background()
	_, err := person().Validate(ctx, map[string]any{"name": "Alice"})
	if err == nil || err.Error() != "in age: Expected number, got undefined" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObject_DeclarationOrderPicksFirstFailure(t *testing.T) {
	ctx := context.Background()
	// Both fields invalid: the first declared field is the one reported.
	_, err := person().Validate(ctx, map[string]any{"name": 1.0, "age": "x"})
	if err == nil || err.Error() != "in name: Expected string, got 1" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObject_IsOpen(t *testing.T) {
	ctx := context.Background()
	v, err := person().Validate(ctx, map[string]any{"name": "Alice", "age": 20.0, "extra": true})
	if err != nil {
		t.Fatalf("extra keys must be ignored: %v", err)
	}
	if _, ok := v["extra"]; !ok {
		t.Fatalf("narrowing must not rewrite the input value")
	}
}

func TestObject_NonContainerInput(t *testing.T) {
	ctx := context.Background()
	_, err := person().Validate(ctx, "Alice")
	if err == nil || err.Error() != `Expected object, got "Alice"` {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = person().Validate(ctx, nil)
	if err == nil || err.Error() != "Expected object, got null" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObject_ArrayQualifiesAsKeyedContainer(t *testing.T) {
	ctx := context.Background()
	pair := guard.Object(
		guard.F("0", guard.String()),
		guard.F("1", guard.Number()),
	)
	v, err := pair.Validate(ctx, []any{"Alice", 20.0})
	if err != nil {
		t.Fatalf("index-as-key lookup should succeed: %v", err)
	}
	if v["0"] != "Alice" || v["1"] != 20.0 {
		t.Fatalf("projected fields missing: %v", v)
	}
	if person().Guard(ctx, []any{"Alice"}) {
		t.Fatalf("declared names that resolve to nothing must still fail")
	}
}

func TestObject_NestedFailurePath(t *testing.T) {
	ctx := context.Background()
	schema := guard.Object(
		guard.F("messages", guard.Array(guard.Object(
			guard.F("content", guard.String()),
		))),
	)
	_, err := schema.Validate(ctx, map[string]any{
		"messages": []any{map[string]any{"content": 42.0}},
	})
	if err == nil || err.Error() != "in messages.0.content: Expected string, got 42" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObject_OptionalField(t *testing.T) {
	ctx := context.Background()
	schema := guard.Object(
		guard.F("name", guard.String()),
		guard.F("nick", guard.String().Optional()),
	)
	if !schema.Guard(ctx, map[string]any{"name": "Alice"}) {
		t.Fatalf("optional field may be absent")
	}
	if schema.Guard(ctx, map[string]any{"name": "Alice", "nick": 1.0}) {
		t.Fatalf("present optional field is still validated")
	}
}
