package immutable

import "context"

// ---- Request-scoped flags (exported for subpackages) ----

type contextKey int

const (
	_ctxKeyNestedSchemas contextKey = iota
	_ctxKeyFailFast
)

// WithNestedSchemas returns a child context that requests expansion of nested
// record schemas during derivation. The derive builder only honors it when
// complex schemas are enabled on the builder itself.
func WithNestedSchemas(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyNestedSchemas, enabled)
}

// NestedSchemasEnabled reports whether the current request asked for nested
// schema expansion.
func NestedSchemasEnabled(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyNestedSchemas)
	b, _ := v.(bool)
	return b
}

// WithFailFast returns a child context that marks fail-fast hydration
// behavior, stopping on the first issue instead of collecting all of them.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current hydration should stop on the first
// issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
