package gen

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DefaultRuntime is the import path of the runtime package generated
// code depends on.
const DefaultRuntime = "xdrgen/xdr"

// Annotations maps type names to extra lines emitted verbatim above
// the corresponding declaration (build directives, lint pragmas, and
// the like).  Default applies to every type without its own entry.
type Annotations struct {
	Default []string            `toml:"default"`
	Types   map[string][]string `toml:"types"`
}

// For returns the annotation lines for one type name.
func (a *Annotations) For(name string) []string {
	if lines, ok := a.Types[name]; ok {
		return lines
	}
	return a.Default
}

// Options configures code generation.
type Options struct {
	// Package is the package clause of the generated file.
	Package string `toml:"package"`

	// Runtime overrides the runtime import path.
	Runtime string `toml:"runtime"`

	Annotations Annotations `toml:"annotations"`
}

func (o *Options) pkg() string {
	if o == nil || o.Package == "" {
		return "main"
	}
	return o.Package
}

func (o *Options) runtime() string {
	if o == nil || o.Runtime == "" {
		return DefaultRuntime
	}
	return o.Runtime
}

// LoadOptions reads an options file in TOML form.
func LoadOptions(path string) (*Options, error) {
	var o Options
	if _, err := toml.DecodeFile(path, &o); err != nil {
		return nil, fmt.Errorf("options %s: %w", path, err)
	}
	return &o, nil
}
