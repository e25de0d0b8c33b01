// File: load.go
// Role: file loading and the bundled demo scenarios.
package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.hcl
var builtinFS embed.FS

const builtinDir = "builtin"

// LoadFile reads a scenario from path, choosing the format by extension:
// .hcl for HCL, .yaml or .yml for YAML.
func LoadFile(p string) (*Scenario, error) {
	src, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("scenario: LoadFile: %w", err)
	}

	switch strings.ToLower(filepath.Ext(p)) {
	case ".hcl":
		return Parse(p, src)
	case ".yaml", ".yml":
		return ParseYAML(p, src)
	default:
		return nil, fmt.Errorf("scenario: LoadFile(%q): %w", p, ErrUnsupportedFormat)
	}
}

// BuiltinNames lists the bundled scenarios, sorted.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(builtinFS, builtinDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".hcl"))
	}
	sort.Strings(names)

	return names
}

// Builtin parses the bundled scenario called name.
func Builtin(name string) (*Scenario, error) {
	file := path.Join(builtinDir, name+".hcl")
	src, err := builtinFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("scenario: Builtin(%q): %w", name, ErrUnknownBuiltin)
	}

	return Parse(file, src)
}
