package guard

// Package guard provides:
//
// - Composable runtime validation of unknown values via Helper[T] (Validate/Guard/Parse/Clone)
// - A path-qualified error model via ErrorBuilder ("in messages.0.content: ...")
// - Structural combinators (Object/Tuple) plus derived Array/Record/Or/And/Refine
// - JSON (goccy/go-json) and YAML (yaml.v3) decode boundaries for Parse
//
// Design policy:
// - Keep the public combinator surface in the root package; HTTP integration lives under middleware/.
// - Helpers are immutable values; composing helpers never mutates the inputs.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	req := guard.Object(
//		guard.F("model", guard.String()),
//		guard.F("messages", messages),
//	)
//	v, err := req.Parse(ctx, body)
//	ok := guard.String().Guard(ctx, raw)
