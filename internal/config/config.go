// Package config loads dummy.yaml.
//
// The file is optional. When present it supplies the defaults of every
// synthesis call in the module: the namespace used for subtype lookups, a
// seed for reproducible random values, the recursion limit, verbose tracing
// and declarative type overrides for well-known scalar types:
//
//	namespace: github.com/acme/app
//	seed: 42
//	max_depth: 16
//	verbose: true
//	overrides:
//	  - type: string
//	    value: fixed
//	  - type: time.Duration
//	    value: 90s
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/dummy/internal/synth"
	"github.com/funvibe/dummy/internal/typegraph"
)

// Config represents dummy.yaml.
type Config struct {
	// Namespace is the default namespace of subtype lookups. When empty the
	// package of the requested type is used.
	Namespace string `yaml:"namespace,omitempty"`

	// Seed makes random synthesis reproducible. 0 seeds from the runtime.
	Seed uint64 `yaml:"seed,omitempty"`

	// MaxDepth bounds recursion through nested types. Defaults to
	// synth.DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Verbose traces synthesis decisions to stderr.
	Verbose bool `yaml:"verbose,omitempty"`

	// Overrides replace every value of a well-known scalar type.
	Overrides []Override `yaml:"overrides,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Override fixes the value of one well-known type.
type Override struct {
	// Type is the builtin type name: "string", "int64", "time.Duration",
	// "github.com/google/uuid.UUID", ...
	Type string `yaml:"type"`

	// Value is decoded into the type's Go representation.
	Value yaml.Node `yaml:"value"`

	symbol  *typegraph.Symbol
	decoded any
}

// Symbol returns the overridden type. Only valid on parsed configs.
func (o *Override) Symbol() *typegraph.Symbol { return o.symbol }

// Decoded returns the decoded value. Only valid on parsed configs.
func (o *Override) Decoded() any { return o.decoded }

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a dummy.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses dummy.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	cfg.Path = path
	return &cfg, nil
}

// FindConfig searches for dummy.yaml starting from dir and walking up to
// parent directories. It returns an empty path and nil error when there is
// none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load finds and parses the config for dir, falling back to Default, then
// applies the environment overrides.
func Load(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if path != "" {
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(path string) error {
	if strings.ContainsAny(c.Namespace, " \t\n") {
		return fmt.Errorf("%s: namespace %q must not contain whitespace", path, c.Namespace)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%s: max_depth must not be negative, got %d", path, c.MaxDepth)
	}

	seen := make(map[string]int)
	for i := range c.Overrides {
		o := &c.Overrides[i]
		if o.Type == "" {
			return fmt.Errorf("%s: overrides[%d]: type is required", path, i)
		}
		if prev, ok := seen[o.Type]; ok {
			return fmt.Errorf("%s: overrides[%d]: type %s already overridden by overrides[%d]", path, i, o.Type, prev)
		}
		seen[o.Type] = i

		sym, ok := typegraph.Builtin(o.Type)
		if !ok || !sym.Kind().IsScalar() {
			return fmt.Errorf("%s: overrides[%d]: %q is not a well-known scalar type", path, i, o.Type)
		}
		if o.Value.Kind == 0 {
			return fmt.Errorf("%s: overrides[%d] (%s): value is required", path, i, o.Type)
		}
		v, err := decode(&o.Value, sym.GoType())
		if err != nil {
			return fmt.Errorf("%s: overrides[%d] (%s): %w", path, i, o.Type, err)
		}
		o.symbol, o.decoded = sym, v
	}
	return nil
}

func decode(node *yaml.Node, t reflect.Type) (any, error) {
	p := reflect.New(t)
	if err := node.Decode(p.Interface()); err != nil {
		return nil, err
	}
	return p.Elem().Interface(), nil
}

func (c *Config) setDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = synth.DefaultMaxDepth
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if s, ok := lookup(SeedEnv); ok && s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", SeedEnv, err)
		}
		c.Seed = seed
	}
	if s, ok := lookup(VerboseEnv); ok && s != "" {
		verbose, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%s: %w", VerboseEnv, err)
		}
		c.Verbose = verbose
	}
	return nil
}

// TypeOverrides returns the declared overrides keyed by symbol.
func (c *Config) TypeOverrides() synth.TypeOverrides {
	out := make(synth.TypeOverrides, len(c.Overrides))
	for i := range c.Overrides {
		v := c.Overrides[i].decoded
		out[c.Overrides[i].symbol] = func() any { return v }
	}
	return out
}
