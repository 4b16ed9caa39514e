package snowtype

import "fmt"

// ParseFunc converts one non-null cell into a typed value.
type ParseFunc[V any] func(raw string) (V, error)

// FieldSpec declares how one positional field of a record type T is
// populated from its cell. Build them with Field, NullField, or
// DelegateField; the set of conversion strategies is closed apart from the
// delegate registry.
type FieldSpec[T any] struct {
	name     string
	optional bool
	convert  func(rec *T, raw string) error
	wrapErr  func(cause error) error
}

// Field declares a required field: a NULL cell is a conversion error.
func Field[T, V any](name string, parse ParseFunc[V], set func(rec *T, v V)) FieldSpec[T] {
	return FieldSpec[T]{
		name: name,
		convert: func(rec *T, raw string) error {
			v, err := parse(raw)
			if err != nil {
				return err
			}
			set(rec, v)
			return nil
		},
	}
}

// NullField declares an optional field: a NULL cell leaves the pointer nil
// without invoking the inner parse strategy.
func NullField[T, V any](name string, parse ParseFunc[V], set func(rec *T, v *V)) FieldSpec[T] {
	return FieldSpec[T]{
		name:     name,
		optional: true,
		convert: func(rec *T, raw string) error {
			v, err := parse(raw)
			if err != nil {
				return err
			}
			set(rec, &v)
			return nil
		},
	}
}

// WithError installs a custom error for this field: wrap receives the
// underlying cause and its result replaces the generic *FieldError.
func (f FieldSpec[T]) WithError(wrap func(cause error) error) FieldSpec[T] {
	f.wrapErr = wrap
	return f
}

func (f *FieldSpec[T]) fail(index int, cause error) error {
	if f.wrapErr != nil {
		return f.wrapErr(cause)
	}
	return &FieldError{Index: index, Name: f.name, Cause: cause}
}

// Schema interprets a row's cells positionally into a record of type T.
// Field order must equal the result set's column order; the positional
// contract, not field names, drives deserialization. A Schema is immutable
// after construction and safe for concurrent use; DecodeRow performs no
// I/O and shares no state between invocations.
type Schema[T any] struct {
	table  string
	fields []FieldSpec[T]
}

// NewSchema declares the record schema for one table. Works the same for
// generated and hand-written schemas.
func NewSchema[T any](table string, fields ...FieldSpec[T]) *Schema[T] {
	return &Schema[T]{table: table, fields: fields}
}

// Table returns the qualified table name the schema was declared for.
func (s *Schema[T]) Table() string { return s.table }

// NumFields returns the declared field count, which is also the required
// cell count per row.
func (s *Schema[T]) NumFields() int { return len(s.fields) }

// DecodeRow converts one ordered row of nullable cells into a record.
// A cell-count mismatch fails with *SchemaMismatchError before any field
// conversion runs. Field failures are fail-fast: the first error is
// returned as (or wrapped by) that field's error and no partial record
// escapes.
func (s *Schema[T]) DecodeRow(cells []*string) (T, error) {
	var zero T
	if len(cells) != len(s.fields) {
		return zero, &SchemaMismatchError{Table: s.table, Expected: len(s.fields), Actual: len(cells)}
	}

	rec := zero
	for i := range s.fields {
		f := &s.fields[i]
		cell := cells[i]
		if cell == nil {
			if f.optional {
				continue
			}
			return zero, f.fail(i, ErrUnexpectedNull)
		}
		if err := f.convert(&rec, *cell); err != nil {
			return zero, f.fail(i, err)
		}
	}
	return rec, nil
}

// Decode converts every row of a query response, failing fast on the first
// bad row. Callers that want to skip or collect bad rows should range over
// resp.Data and call DecodeRow themselves; per-row errors are ordinary
// values, never fatal to the process.
func (s *Schema[T]) Decode(resp *QueryResponse) ([]T, error) {
	out := make([]T, 0, len(resp.Data))
	for i, row := range resp.Data {
		rec, err := s.DecodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
