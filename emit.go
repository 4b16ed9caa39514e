package snowtype

import (
	"fmt"
	"go/format"
	"sort"
	"strings"
)

const libImport = "github.com/meltwire/snowtype"

// renderArtifact produces the single generated source file for all records
// and enums. Output is deterministic: identical specs yield identical
// bytes, and the result is gofmt-formatted.
func renderArtifact(pkg, fingerprint string, records []RecordSpec) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Code generated by snowtype. DO NOT EDIT.\n")
	b.WriteString(fingerprintPrefix + fingerprint + "\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)

	writeImports(&b, records)

	emitted := make(map[string]bool)
	for _, rec := range records {
		writeRecord(&b, rec)
		for _, enum := range rec.Enums {
			if emitted[enum.Name] {
				continue
			}
			emitted[enum.Name] = true
			writeEnum(&b, enum)
		}
	}

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

func writeImports(b *strings.Builder, records []RecordSpec) {
	std := make(map[string]bool)
	ext := map[string]bool{libImport: true}
	for _, rec := range records {
		for _, f := range rec.Fields {
			switch f.Type.Kind {
			case KindTime:
				std["time"] = true
			case KindDecimal:
				ext["github.com/shopspring/decimal"] = true
			case KindDelegate:
				if f.Type.DelegateImport != "" {
					ext[f.Type.DelegateImport] = true
				}
			}
		}
		if len(rec.Enums) > 0 {
			std["fmt"] = true
		}
	}

	b.WriteString("import (\n")
	for _, path := range sortedKeys(std) {
		fmt.Fprintf(b, "\t%q\n", path)
	}
	if len(std) > 0 {
		b.WriteString("\n")
	}
	for _, path := range sortedKeys(ext) {
		fmt.Fprintf(b, "\t%q\n", path)
	}
	b.WriteString(")\n\n")
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeRecord(b *strings.Builder, rec RecordSpec) {
	fmt.Fprintf(b, "// %s is the record type for %s %s.\n", rec.GoName, rec.Database, rec.Table)
	fmt.Fprintf(b, "type %s struct {\n", rec.GoName)
	for _, f := range rec.Fields {
		fmt.Fprintf(b, "\t%s %s\n", f.GoName, typeExpr(f.Type))
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "// %sSchema decodes %s rows in column order.\n", rec.GoName, rec.Table)
	fmt.Fprintf(b, "var %sSchema = snowtype.NewSchema(%q,\n", rec.GoName, rec.Table)
	for _, f := range rec.Fields {
		ctor := "Field"
		valType := baseTypeExpr(f.Type)
		if f.Type.Optional {
			ctor = "NullField"
			valType = "*" + valType
		}
		fmt.Fprintf(b, "\tsnowtype.%s(%q, %s, func(r *%s, v %s) { r.%s = v }),\n",
			ctor, f.Column.Name, parseExpr(f), rec.GoName, valType, f.GoName)
	}
	b.WriteString(")\n\n")
}

// typeExpr renders the field's Go type, pointered when optional.
func typeExpr(ft FieldType) string {
	base := baseTypeExpr(ft)
	if ft.Optional {
		return "*" + base
	}
	return base
}

func baseTypeExpr(ft FieldType) string {
	switch ft.Kind {
	case KindInt:
		return "int64"
	case KindUint:
		return "uint64"
	case KindDecimal:
		return "decimal.Decimal"
	case KindFloat:
		return "float64"
	case KindText:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time.Time"
	case KindEnum:
		return ft.Enum
	case KindDelegate:
		if ft.DelegateImport == "" {
			return ft.DelegateType
		}
		return pkgName(ft.DelegateImport) + "." + ft.DelegateType
	}
	return ""
}

func pkgName(importPath string) string {
	if i := strings.LastIndexByte(importPath, '/'); i >= 0 {
		return importPath[i+1:]
	}
	return importPath
}

// parseExpr picks the conversion strategy expression for one field.
func parseExpr(f FieldDef) string {
	switch f.Type.Kind {
	case KindInt:
		return "snowtype.ParseInt64"
	case KindUint:
		return "snowtype.ParseUint64"
	case KindDecimal:
		return "snowtype.ParseDecimal"
	case KindFloat:
		return "snowtype.ParseFloat64"
	case KindText:
		return "snowtype.ParseString"
	case KindBool:
		return "snowtype.ParseBool"
	case KindTime:
		if f.Column.SQLType == "date" {
			return "snowtype.ParseDate"
		}
		return "snowtype.ParseTime"
	case KindEnum:
		return f.Type.Enum + "Table.Parse"
	case KindDelegate:
		return "snowtype.JSON[" + baseTypeExpr(f.Type) + "]"
	}
	return ""
}

func writeEnum(b *strings.Builder, enum EnumSpec) {
	fmt.Fprintf(b, "// %s enumerates the configured source values for its column.\n", enum.Name)
	fmt.Fprintf(b, "type %s int\n\n", enum.Name)

	b.WriteString("const (\n")
	for i, v := range enum.Variants {
		if i == 0 {
			fmt.Fprintf(b, "\t%s%s %s = iota\n", enum.Name, v.Ident, enum.Name)
		} else {
			fmt.Fprintf(b, "\t%s%s\n", enum.Name, v.Ident)
		}
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(b, "// String returns the exact upstream source string.\n")
	fmt.Fprintf(b, "func (e %s) String() string {\n", enum.Name)
	b.WriteString("\tswitch e {\n")
	for _, v := range enum.Variants {
		fmt.Fprintf(b, "\tcase %s%s:\n\t\treturn %q\n", enum.Name, v.Ident, v.Source)
	}
	b.WriteString("\t}\n")
	fmt.Fprintf(b, "\treturn fmt.Sprintf(\"%s(%%d)\", int(e))\n", enum.Name)
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "// %sTable is the exact-match lookup used during row decoding.\n", enum.Name)
	fmt.Fprintf(b, "var %sTable = snowtype.NewEnumTable(%q,\n", enum.Name, enum.Name)
	for _, v := range enum.Variants {
		fmt.Fprintf(b, "\tsnowtype.Variant[%s]{Source: %q, Value: %s%s},\n", enum.Name, v.Source, enum.Name, v.Ident)
	}
	b.WriteString(")\n\n")
}
