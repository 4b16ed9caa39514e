package snowtype

// Column describes a single result-set column as reported by the Snowflake
// SQL API's resultSetMetaData.rowType entries.
type Column struct {
	Name       string
	Database   string
	Schema     string
	Table      string
	SQLType    string // lowercase API type, e.g. "fixed", "text", "boolean"
	Precision  int64
	Scale      int64
	Nullable   bool
	OrdinalPos int
}

// FieldKind is the closed set of target representations a column can
// resolve to.
type FieldKind int

const (
	KindInt FieldKind = iota
	KindUint
	KindDecimal
	KindFloat
	KindText
	KindBool
	KindTime
	KindEnum
	KindDelegate
)

// FieldType is the resolved Go-side type for one column. Optional marks the
// field as a pointer in the generated record.
type FieldType struct {
	Kind     FieldKind
	Optional bool

	// Enum type name, set when Kind == KindEnum.
	Enum string

	// Delegate target, set when Kind == KindDelegate. DelegateImport is
	// empty for types living in the artifact's own package.
	DelegateImport string
	DelegateType   string
}

// FieldDef pairs a fetched column with its Go field name and resolved type.
type FieldDef struct {
	Column Column
	GoName string
	Type   FieldType
}

// RecordSpec is the generation-time schema of one table's record type.
// Field order equals column ordinal order; that order is the
// deserialization contract.
type RecordSpec struct {
	Database string
	Table    string // qualified name from config, e.g. "PUBLIC.MENU"
	GoName   string
	Fields   []FieldDef
	Enums    []EnumSpec
}
