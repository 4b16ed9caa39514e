package snowtype

import (
	"errors"
	"fmt"
)

// ErrUnexpectedNull is the cause recorded when a NULL cell arrives for a
// field that was not declared optional.
var ErrUnexpectedNull = errors.New("unexpected null for required field")

// ConfigError reports a malformed or contradictory generation configuration,
// e.g. duplicate enum source strings. Generation-fatal.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// MetadataFetchError reports a failure retrieving column metadata for a
// table (transport, authorization, or missing object). Generation-fatal.
type MetadataFetchError struct {
	Database string
	Table    string
	Err      error
}

func (e *MetadataFetchError) Error() string {
	return fmt.Sprintf("fetch metadata for %s.%s: %v", e.Database, e.Table, e.Err)
}

func (e *MetadataFetchError) Unwrap() error { return e.Err }

// UnresolvedTypeError reports a column whose SQL type matches no mapping
// rule and no configured override. Generation-fatal.
type UnresolvedTypeError struct {
	Table   string
	Column  string
	SQLType string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("no type mapping for column %s.%s (sql type %q)", e.Table, e.Column, e.SQLType)
}

// CodeGenIOError reports a failure writing or replacing the generated
// artifact. The prior artifact, if any, is left untouched.
type CodeGenIOError struct {
	Path string
	Err  error
}

func (e *CodeGenIOError) Error() string {
	return fmt.Sprintf("write artifact %s: %v", e.Path, e.Err)
}

func (e *CodeGenIOError) Unwrap() error { return e.Err }

// SchemaMismatchError reports a row whose cell count does not match the
// schema's field count. Returned before any field conversion runs.
type SchemaMismatchError struct {
	Table    string
	Expected int
	Actual   int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("row for %s has %d cells, schema declares %d fields", e.Table, e.Actual, e.Expected)
}

// FieldError reports a conversion failure for a single field, identified by
// both positional index and declared name. The cause is one of
// ErrUnexpectedNull, *EnumMatchError, *DelegateError, or the underlying
// parse error.
type FieldError struct {
	Index int
	Name  string
	Cause error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %d (%s): %v", e.Index, e.Name, e.Cause)
}

func (e *FieldError) Unwrap() error { return e.Cause }

// EnumMatchError reports a cell value with no exact match in an enum's
// variant table. Matching is case-sensitive and has no fallback variant.
type EnumMatchError struct {
	Enum  string
	Value string
}

func (e *EnumMatchError) Error() string {
	return fmt.Sprintf("no %s variant matches %q", e.Enum, e.Value)
}

// DelegateError wraps a failure from an externally supplied structured
// parser (e.g. a JSON payload type).
type DelegateError struct {
	TypeRef string
	Err     error
}

func (e *DelegateError) Error() string {
	return fmt.Sprintf("delegate %s: %v", e.TypeRef, e.Err)
}

func (e *DelegateError) Unwrap() error { return e.Err }
