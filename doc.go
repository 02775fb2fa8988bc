// Package pave (Parse And Validate Everything) provides type-safe readers
// that turn an immutable JSON-like value tree into Go values, reporting
// every failure with the location it happened at.
//
// A value tree is built from a source document:
//   - JSON (ParseJSON, ParseJSONString, FromGJSON)
//   - YAML (ParseYAML)
//   - Go values shaped like encoding/json output (FromNative)
//
// Readers are composed from small pieces:
//   - Leaf readers: String, Bool, Number, Int64, Int, Float64, UUID, Any
//   - Combinators: Map, Bind, Or, Recover, Filter, Validate, Nullable,
//     IfNullValue, Catching, Lazy
//   - Struct readers built from property specs (Required, Optional,
//     Defaultable, RequiredIf) with multiple candidate paths each
//   - Array readers with prefix items, an items reader and an optional ban
//     on additional items
//   - Tag compiled readers (ReaderFor) for structs carrying `read` tags
//
// Every read runs against an Env, which selects the error builder, the
// fail-fast or accumulate mode, the depth limit, the panic handler, and
// the logger. In fail-fast mode a read stops at the first failure. In
// accumulate mode failures of sibling properties and items are merged, and
// the first cause always matches the one fail-fast would report.
//
//	users := pave.NewStructBuilder[User]()
//	pave.Prop(users, pave.Required(pave.String(), pave.KeyPath("id")), func(u *User, v string) { u.ID = v })
//	tree, _ := pave.ParseJSON(data)
//	user, err := pave.Read(pave.Env{}, users.Build(), tree).Get()
//
// A type whose pointer implements Validatable has its Validate method
// called after every property was read successfully.
package pave

/**
PLANNING:
- Support fixed-length Go arrays in TagCompiler through prefix items.
- Allow a custom time layout per field in the `read` tag.
*/
