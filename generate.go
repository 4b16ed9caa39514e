package snowtype

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MetadataFetcher retrieves the ordered column descriptors for a qualified
// table name. Implementations must not share mutable state between calls;
// *Connector satisfies this via the SQL API.
type MetadataFetcher interface {
	TableColumns(ctx context.Context, database, table string) ([]Column, error)
}

// Generator runs the offline code-generation pass: fetch metadata for every
// configured table, resolve field types, and emit one deterministic source
// artifact. Any per-table failure aborts the whole run and leaves the prior
// artifact untouched.
type Generator struct {
	cfg     *Config
	fetcher MetadataFetcher
}

func NewGenerator(cfg *Config, fetcher MetadataFetcher) *Generator {
	return &Generator{cfg: cfg, fetcher: fetcher}
}

// Run regenerates the artifact unless the recorded config fingerprint is
// unchanged, in which case it returns false without any metadata fetch.
// A true result means a new artifact was atomically written.
func (g *Generator) Run(ctx context.Context) (bool, error) {
	fp := configFingerprint(g.cfg.raw)
	outPath := g.cfg.resolvePath(g.cfg.Output)

	if prev, ok := readArtifactFingerprint(outPath); ok && prev == fp {
		return false, nil
	}

	records, err := g.buildRecords(ctx)
	if err != nil {
		return false, err
	}

	src, err := renderArtifact(g.cfg.Package, fp, records)
	if err != nil {
		return false, err
	}

	if err := writeFileAtomic(outPath, src); err != nil {
		return false, err
	}
	return true, nil
}

// buildRecords fetches and resolves every configured table, in config
// order, so diagnostics and artifact layout are deterministic.
func (g *Generator) buildRecords(ctx context.Context) ([]RecordSpec, error) {
	var records []RecordSpec
	seenRecords := make(map[string]string)
	seenEnums := make(map[string]EnumSpec)

	for _, db := range g.cfg.Databases {
		for i := range db.Tables {
			tbl := &db.Tables[i]
			rec, err := g.buildRecord(ctx, db.Name, tbl, seenEnums)
			if err != nil {
				return nil, err
			}
			if prev, dup := seenRecords[rec.GoName]; dup {
				return nil, configErrorf("tables %s and %s both generate record type %s", prev, tbl.Name, rec.GoName)
			}
			seenRecords[rec.GoName] = tbl.Name
			records = append(records, rec)
		}
	}
	return records, nil
}

func (g *Generator) buildRecord(ctx context.Context, database string, tbl *TableConfig, seenEnums map[string]EnumSpec) (RecordSpec, error) {
	log.Printf("  fetching metadata for %s %s...", database, tbl.Name)
	cols, err := g.fetcher.TableColumns(ctx, database, tbl.Name)
	if err != nil {
		return RecordSpec{}, fmt.Errorf("database %s table %s: %w", database, tbl.Name, err)
	}
	if len(cols) == 0 {
		return RecordSpec{}, &MetadataFetchError{
			Database: database,
			Table:    tbl.Name,
			Err:      fmt.Errorf("no columns returned"),
		}
	}

	rec := RecordSpec{
		Database: database,
		Table:    tbl.Name,
		GoName:   upperCamel(tableBaseName(tbl.Name)),
		Fields:   make([]FieldDef, 0, len(cols)),
	}
	for _, col := range cols {
		ft, err := resolveFieldType(col, tbl)
		if err != nil {
			return RecordSpec{}, fmt.Errorf("database %s table %s: %w", database, tbl.Name, err)
		}
		rec.Fields = append(rec.Fields, FieldDef{
			Column: col,
			GoName: upperCamel(col.Name),
			Type:   ft,
		})
		if ft.Kind == KindEnum {
			enum, err := g.enumSpecFor(tbl, col, ft.Enum, seenEnums)
			if err != nil {
				return RecordSpec{}, fmt.Errorf("database %s table %s: %w", database, tbl.Name, err)
			}
			rec.Enums = append(rec.Enums, enum)
		}
	}
	if err := validateOverrideKeys(database, tbl, cols); err != nil {
		return RecordSpec{}, err
	}
	return rec, nil
}

// enumSpecFor builds (or reuses) the enum definition for one overridden
// column. Two columns may share an enum type name only if they declare
// identical variants.
func (g *Generator) enumSpecFor(tbl *TableConfig, col Column, name string, seen map[string]EnumSpec) (EnumSpec, error) {
	sources := tbl.Enums[snakeCase(col.Name)]
	enum, err := newEnumSpec(name, sources)
	if err != nil {
		return EnumSpec{}, configErrorf("column %q: %v", col.Name, err)
	}
	if prev, ok := seen[name]; ok {
		if !prev.equal(enum) {
			return EnumSpec{}, configErrorf("enum %s is defined twice with different variants", name)
		}
		return prev, nil
	}
	seen[name] = enum
	return enum, nil
}

// validateOverrideKeys rejects configured overrides that match none of the
// table's columns; a typo there would otherwise silently generate nothing.
func validateOverrideKeys(database string, tbl *TableConfig, cols []Column) error {
	present := make(map[string]bool, len(cols))
	for _, col := range cols {
		present[snakeCase(col.Name)] = true
	}

	var unknown []string
	for _, key := range tbl.Unsigned {
		if !present[key] {
			unknown = append(unknown, key)
		}
	}
	for key := range tbl.JSON {
		if !present[key] {
			unknown = append(unknown, key)
		}
	}
	for key := range tbl.Enums {
		if !present[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return configErrorf("database %s table %s: overrides reference unknown columns: %v", database, tbl.Name, unknown)
}

// tableBaseName strips the schema qualifier, so "PUBLIC.MENU" yields "MENU".
func tableBaseName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// writeFileAtomic replaces path with data via write-to-temp then rename, so
// a failure mid-write never leaves a partial artifact behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snowtype-*.go")
	if err != nil {
		return &CodeGenIOError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &CodeGenIOError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &CodeGenIOError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &CodeGenIOError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &CodeGenIOError{Path: path, Err: err}
	}
	return nil
}
