package immutable

// Package immutable provides:
//
// - A registry of record (value object) types described through reflection
// - Per-type property metadata (kind, nullability, optionality, defaults)
// - Doc-comment derived descriptions and @example values per property
// - Automatic JSON Schema derivation via the derive subpackage
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place schema derivation under derive/, schema primitives under jsonschema/,
//   doc-comment parsing under docstring/, and the CLI under cmd/recordgen.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	immutable.Register(User{Active: true})
//	desc, err := immutable.Describe(User{})
//
//	b := derive.New(immutable.DefaultRegistry(), derive.AllowComplex(true))
//	s, err := b.SchemaFor(ctx, User{})
//
//	u, err := immutable.Hydrate[User](ctx, immutable.DefaultRegistry(), wire)
