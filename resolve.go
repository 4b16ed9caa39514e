package snowtype

// resolveFieldType maps one fetched column plus the table's configured
// overrides to its target field type. Pure; evaluated in priority order:
// enum override, json override, then SQL type. Columns the rules cannot
// place get an *UnresolvedTypeError so generation aborts instead of
// guessing.
func resolveFieldType(col Column, tbl *TableConfig) (FieldType, error) {
	key := snakeCase(col.Name)

	var ft FieldType
	switch {
	case tbl.Enums[key] != nil:
		ft = FieldType{Kind: KindEnum, Enum: upperCamel(key)}

	case tbl.JSON[key] != "":
		importPath, typeName, err := parseDelegateRef(tbl.JSON[key])
		if err != nil {
			// Unreachable for configs that passed LoadConfig.
			return FieldType{}, err
		}
		ft = FieldType{Kind: KindDelegate, DelegateImport: importPath, DelegateType: typeName}

	default:
		kind, err := kindForSQLType(col, tbl.isUnsigned(key))
		if err != nil {
			return FieldType{}, err
		}
		ft = FieldType{Kind: kind}
	}

	ft.Optional = col.Nullable
	return ft, nil
}

func kindForSQLType(col Column, unsigned bool) (FieldKind, error) {
	switch col.SQLType {
	case "fixed":
		if col.Scale != 0 {
			return KindDecimal, nil
		}
		if unsigned {
			return KindUint, nil
		}
		return KindInt, nil
	case "real":
		return KindFloat, nil
	case "text", "variant":
		return KindText, nil
	case "boolean":
		return KindBool, nil
	case "date", "time", "timestamp_ntz", "timestamp_ltz", "timestamp_tz":
		return KindTime, nil
	default:
		return 0, &UnresolvedTypeError{
			Table:   col.Table,
			Column:  col.Name,
			SQLType: col.SQLType,
		}
	}
}
