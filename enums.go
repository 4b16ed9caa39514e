package snowtype

import "fmt"

// EnumVariant is one declared enum value: the exact upstream source string
// and the Go identifier suffix derived from it.
type EnumVariant struct {
	Source string
	Ident  string
}

// EnumSpec is the generation-time definition of one enum override. Variant
// order follows the configured declaration order.
type EnumSpec struct {
	Name     string
	Variants []EnumVariant
}

// newEnumSpec builds an EnumSpec from the configured ordered source
// strings. Duplicate sources, and distinct sources that normalize to the
// same identifier, are rejected.
func newEnumSpec(name string, sources []string) (EnumSpec, error) {
	spec := EnumSpec{Name: name, Variants: make([]EnumVariant, 0, len(sources))}
	seenSource := make(map[string]bool, len(sources))
	seenIdent := make(map[string]string, len(sources))
	for _, src := range sources {
		if seenSource[src] {
			return EnumSpec{}, fmt.Errorf("duplicate enum value %q", src)
		}
		seenSource[src] = true

		ident := variantIdent(src)
		if ident == "" {
			return EnumSpec{}, fmt.Errorf("enum value %q normalizes to an empty identifier", src)
		}
		if prev, ok := seenIdent[ident]; ok {
			return EnumSpec{}, fmt.Errorf("enum values %q and %q both normalize to identifier %s", prev, src, ident)
		}
		seenIdent[ident] = src

		spec.Variants = append(spec.Variants, EnumVariant{Source: src, Ident: ident})
	}
	return spec, nil
}

// equal reports whether two specs declare the same variants in the same
// order. Used to let several tables share one enum definition.
func (s EnumSpec) equal(o EnumSpec) bool {
	if s.Name != o.Name || len(s.Variants) != len(o.Variants) {
		return false
	}
	for i := range s.Variants {
		if s.Variants[i] != o.Variants[i] {
			return false
		}
	}
	return true
}

// Variant pairs an exact source string with its enum value, for building an
// EnumTable in declaration order.
type Variant[E any] struct {
	Source string
	Value  E
}

// EnumTable is the immutable exact-match lookup from source strings to enum
// values. Built once at schema-definition time; matching is case-sensitive
// with no fallback variant. Safe for concurrent use.
type EnumTable[E any] struct {
	name     string
	bySource map[string]E
}

// NewEnumTable builds the lookup table for one enum type. Duplicate source
// strings are a definition bug and panic, mirroring template.Must-style
// construction of package-level values.
func NewEnumTable[E any](name string, variants ...Variant[E]) *EnumTable[E] {
	t := &EnumTable[E]{
		name:     name,
		bySource: make(map[string]E, len(variants)),
	}
	for _, v := range variants {
		if _, dup := t.bySource[v.Source]; dup {
			panic(fmt.Sprintf("snowtype: duplicate %s variant source %q", name, v.Source))
		}
		t.bySource[v.Source] = v.Value
	}
	return t
}

// Name returns the enum type name the table was declared with.
func (t *EnumTable[E]) Name() string { return t.name }

// Parse resolves a cell value to its enum variant by exact string match.
// A miss returns *EnumMatchError; it never invents a default variant.
func (t *EnumTable[E]) Parse(raw string) (E, error) {
	v, ok := t.bySource[raw]
	if !ok {
		var zero E
		return zero, &EnumMatchError{Enum: t.name, Value: raw}
	}
	return v, nil
}
