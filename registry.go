package snowtype

import "fmt"

// DelegateParser is an externally supplied structured parser for columns
// whose target type is not expressible by the primitive or enum strategies.
type DelegateParser func(raw string) (any, error)

// Registry maps delegate type reference names to their parsers. It is
// resolved at schema-definition time and immutable afterwards, so lookups
// are safe for concurrent use.
type Registry struct {
	parsers map[string]DelegateParser
}

// NewRegistry copies the given parsers into an immutable registry. Later
// changes to the argument map do not affect the registry.
func NewRegistry(parsers map[string]DelegateParser) *Registry {
	m := make(map[string]DelegateParser, len(parsers))
	for name, p := range parsers {
		m[name] = p
	}
	return &Registry{parsers: m}
}

// Lookup returns the parser registered for a type reference name.
func (r *Registry) Lookup(typeRef string) (DelegateParser, bool) {
	p, ok := r.parsers[typeRef]
	return p, ok
}

// Parse runs the registered parser for typeRef on one cell value. Callers
// decoding ad hoc rows outside a Schema use this directly; failures come
// back as *DelegateError.
func (r *Registry) Parse(typeRef, raw string) (any, error) {
	p, ok := r.parsers[typeRef]
	if !ok {
		return nil, &DelegateError{TypeRef: typeRef, Err: fmt.Errorf("no parser registered")}
	}
	v, err := p(raw)
	if err != nil {
		if _, ok := err.(*DelegateError); !ok {
			err = &DelegateError{TypeRef: typeRef, Err: err}
		}
		return nil, err
	}
	return v, nil
}

// JSONParser adapts the typed JSON strategy into a DelegateParser for
// registration under a type reference name.
func JSONParser[V any]() DelegateParser {
	return func(raw string) (any, error) {
		return JSON[V](raw)
	}
}

// DelegateField declares a field whose conversion is delegated to a
// registered parser, for hand-written schemas over columns the generator
// does not know about. The registry entry is resolved here, at schema
// definition, so a missing registration is a definition bug and panics
// rather than failing row by row.
func DelegateField[T any](name, typeRef string, reg *Registry, set func(rec *T, v any)) FieldSpec[T] {
	parse, ok := reg.Lookup(typeRef)
	if !ok {
		panic(fmt.Sprintf("snowtype: no delegate parser registered for %q", typeRef))
	}
	return FieldSpec[T]{
		name: name,
		convert: func(rec *T, raw string) error {
			v, err := parse(raw)
			if err != nil {
				if _, ok := err.(*DelegateError); !ok {
					err = &DelegateError{TypeRef: typeRef, Err: err}
				}
				return err
			}
			set(rec, v)
			return nil
		},
	}
}

// NullDelegateField is the optional-column variant of DelegateField: a NULL
// cell skips the delegate entirely and leaves the field unset.
func NullDelegateField[T any](name, typeRef string, reg *Registry, set func(rec *T, v any)) FieldSpec[T] {
	f := DelegateField(name, typeRef, reg, set)
	f.optional = true
	return f
}
