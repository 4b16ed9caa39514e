package snowtype

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the full TOML-driven generation configuration.
type Config struct {
	Package string `toml:"package"`
	Output  string `toml:"output"`

	PrivateKeyPath string `toml:"private_key_path"`
	PublicKeyPath  string `toml:"public_key_path"`
	Host           string `toml:"host"`
	Account        string `toml:"account"`
	User           string `toml:"user"`
	Role           string `toml:"role"`
	Warehouse      string `toml:"warehouse"`

	Databases []DatabaseConfig `toml:"databases"`

	// configDir is the directory containing the TOML file, used to resolve
	// relative key and output paths.
	configDir string

	// raw is the config file content as read from disk; its hash is the
	// generation fingerprint.
	raw []byte
}

// DatabaseConfig is one [[databases]] block.
type DatabaseConfig struct {
	Name   string        `toml:"name"`
	Tables []TableConfig `toml:"tables"`
}

// TableConfig is one [[databases.tables]] block. Override keys are
// snake_case column names.
type TableConfig struct {
	Name     string              `toml:"name"` // qualified "SCHEMA.TABLE"
	Unsigned []string            `toml:"unsigned"`
	JSON     map[string]string   `toml:"json"`
	Enums    map[string][]string `toml:"enums"`
}

// isUnsigned reports whether a snake_case column key is listed in the
// table's unsigned set.
func (t *TableConfig) isUnsigned(key string) bool {
	return slices.Contains(t.Unsigned, key)
}

// LoadConfig reads a TOML config file, applies defaults, and validates it.
// Semantic problems (contradictory overrides, duplicate enum values) are
// returned as *ConfigError.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Config{
		Output: "snowflake_tables.go",
		raw:    data,
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, configErrorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Package = strings.TrimSpace(c.Package)
	if c.Package == "" {
		return configErrorf("package is required")
	}
	if c.Output == "" {
		return configErrorf("output is required")
	}
	for _, field := range []struct{ name, value string }{
		{"private_key_path", c.PrivateKeyPath},
		{"public_key_path", c.PublicKeyPath},
		{"host", c.Host},
		{"account", c.Account},
		{"user", c.User},
	} {
		if strings.TrimSpace(field.value) == "" {
			return configErrorf("%s is required", field.name)
		}
	}
	if len(c.Databases) == 0 {
		return configErrorf("at least one [[databases]] block is required")
	}

	for _, db := range c.Databases {
		if strings.TrimSpace(db.Name) == "" {
			return configErrorf("databases block is missing a name")
		}
		if len(db.Tables) == 0 {
			return configErrorf("database %s declares no tables", db.Name)
		}
		for _, tbl := range db.Tables {
			if err := validateTable(db.Name, tbl); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTable(database string, tbl TableConfig) error {
	if strings.TrimSpace(tbl.Name) == "" {
		return configErrorf("database %s has a table block without a name", database)
	}
	for col, ref := range tbl.JSON {
		if _, also := tbl.Enums[col]; also {
			return configErrorf("%s %s: column %q has both json and enum overrides", database, tbl.Name, col)
		}
		if _, _, err := parseDelegateRef(ref); err != nil {
			return configErrorf("%s %s: column %q: %v", database, tbl.Name, col, err)
		}
	}
	for col, sources := range tbl.Enums {
		if len(sources) == 0 {
			return configErrorf("%s %s: enum override for column %q lists no values", database, tbl.Name, col)
		}
		if _, err := newEnumSpec(upperCamel(col), sources); err != nil {
			return configErrorf("%s %s: column %q: %v", database, tbl.Name, col, err)
		}
	}
	return nil
}

// Connector builds a SQL API connector from the config's auth fields, with
// key paths resolved relative to the config file.
func (c *Config) Connector() (*Connector, error) {
	return NewConnector(ConnectorConfig{
		Host:           c.Host,
		Account:        c.Account,
		User:           c.User,
		PublicKeyPath:  c.resolvePath(c.PublicKeyPath),
		PrivateKeyPath: c.resolvePath(c.PrivateKeyPath),
		Role:           c.Role,
		Warehouse:      c.Warehouse,
	})
}

// resolvePath resolves a path relative to the config file directory.
func (c *Config) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.configDir, p)
}

// parseDelegateRef splits a json override target like
// "example.com/app/metrics.Metrics" into its import path and type name. A
// bare "Metrics" refers to a type in the artifact's own package.
func parseDelegateRef(ref string) (importPath, typeName string, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", fmt.Errorf("empty json type reference")
	}
	slash := strings.LastIndexByte(ref, '/')
	dot := strings.LastIndexByte(ref, '.')
	if dot < slash {
		return "", "", fmt.Errorf("json type reference %q has no type name after import path", ref)
	}
	if dot < 0 {
		typeName = ref
	} else {
		importPath = ref[:dot]
		typeName = ref[dot+1:]
	}
	if !validTypeName(typeName) {
		return "", "", fmt.Errorf("json type reference %q has invalid type name %q", ref, typeName)
	}
	return importPath, typeName, nil
}

func validTypeName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
