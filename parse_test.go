package guard_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	guard "github.com/guardkit/guard"
)

func chatSchema() guard.Helper[map[string]any] {
	message := guard.Object(
		guard.F("role", guard.Literal("user", "assistant", "system")),
		guard.F("content", guard.String()),
	)
	messages := guard.Array(message).Refine(func(ctx context.Context, v []map[string]any) *guard.ErrorBuilder {
		if len(v) == 0 {
			return guard.NewError("Messages should not be empty")
		}
		return nil
	})
	return guard.Object(
		guard.F("model", guard.String()),
		guard.F("messages", messages),
	)
}

func TestParse_ValidPayload(t *testing.T) {
	ctx := context.Background()
	v, err := chatSchema().ParseString(ctx, `{"model":"m","messages":[{"role":"user","content":"hi"}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v["model"] != "m" {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestParse_RefinementFailureAtFieldLocation(t *testing.T) {
	ctx := context.Background()
	_, err := chatSchema().ParseString(ctx, `{"model":"m","messages":[]}`)
	if err == nil || err.Error() != "in messages: Messages should not be empty" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParse_NestedShapeFailure(t *testing.T) {
	ctx := context.Background()
	_, err := chatSchema().ParseString(ctx, `{"model":"m","messages":[{"role":"user","content":42}]}`)
	if err == nil || err.Error() != "in messages.0.content: Expected string, got 42" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParse_DecodeFailureSharesErrorChannel(t *testing.T) {
	ctx := context.Background()
	_, err := chatSchema().Parse(ctx, []byte(`{"model":`))
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseWithDefault_ReturnsFreshCopy(t *testing.T) {
	ctx := context.Background()
	def := map[string]any{"model": "fallback", "tags": []any{"a"}}
	got := chatSchema().ParseWithDefault(ctx, []byte(`not json`), def)
	if !reflect.DeepEqual(got, def) {
		t.Fatalf("default should be structurally equal: %v", got)
	}
	got["model"] = "mutated"
	got["tags"].([]any)[0] = "b"
	if def["model"] != "fallback" || def["tags"].([]any)[0] != "a" {
		t.Fatalf("mutating the returned value must not affect the default: %v", def)
	}
}

func TestParseWithDefault_IgnoredOnSuccess(t *testing.T) {
	ctx := context.Background()
	def := map[string]any{"model": "fallback"}
	got := chatSchema().ParseWithDefault(ctx, []byte(`{"model":"m","messages":[{"role":"user","content":"hi"}]}`), def)
	if got["model"] != "m" {
		t.Fatalf("valid input must win over the default: %v", got)
	}
}

func TestClone_RoundTripsPlainData(t *testing.T) {
	ctx := context.Background()
	v := map[string]any{"name": "Alice", "age": 20.0}
	c, err := person().Clone(ctx, v)
	if err != nil || !reflect.DeepEqual(c, v) {
		t.Fatalf("clone should round-trip: %v / %v", c, err)
	}
	c["name"] = "Bob"
	if v["name"] != "Alice" {
		t.Fatalf("clone must not alias the original")
	}
}

// opaque serializes to a bare string, deliberately losing its object shape.
type opaque struct {
	V string `json:"v"`
}

func (o opaque) MarshalJSON() ([]byte, error) { return []byte(`"` + o.V + `"`), nil }

func TestClone_SurfacesFidelityLoss(t *testing.T) {
	ctx := context.Background()
	h := guard.Bind[opaque](guard.Object(guard.F("v", guard.String())))
	_, err := h.Clone(ctx, opaque{V: "x"})
	if err == nil || err.Error() != `Expected object, got "x"` {
		t.Fatalf("round-trip shape change must fail revalidation: %v", err)
	}
}

func TestParseYAML_NormalizesToJSONModel(t *testing.T) {
	ctx := context.Background()
	doc := []byte("name: Alice\nage: 30\n")
	v, err := person().ParseYAML(ctx, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v["age"] != 30.0 {
		t.Fatalf("integer scalars should normalize to float64: %v (%T)", v["age"], v["age"])
	}
	if _, err := person().ParseYAML(ctx, []byte("[unclosed")); err == nil {
		t.Fatalf("malformed YAML must fail")
	}
}

func TestParseYAML_Sequences(t *testing.T) {
	ctx := context.Background()
	nums := guard.Array(guard.Number())
	v, err := nums.ParseYAML(ctx, []byte("- 1\n- 2.5\n"))
	if err != nil || !reflect.DeepEqual(v, []float64{1, 2.5}) {
		t.Fatalf("unexpected result: %v / %v", v, err)
	}
}
