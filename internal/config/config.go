package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		ComponentsDir string `yaml:"components_dir"`
		ImportPrefix  string `yaml:"import_prefix"`
	} `yaml:"project"`
	Split struct {
		ReservedNames []string `yaml:"reserved_names"`
		RuntimeModule string   `yaml:"runtime_module"`
		RuntimeGlobal string   `yaml:"runtime_global"`
		HookPrefix    string   `yaml:"hook_prefix"`
	} `yaml:"split"`
	Format struct {
		Quote      string `yaml:"quote"`  // "single" or "double"
		Indent     int    `yaml:"indent"` // spaces
		Semicolons bool   `yaml:"semicolons"`
	} `yaml:"format"`
}

// Default returns the configuration used when no config file is present.
// The reserved names cover the conventional root export plus the entry-point
// names routing frameworks claim for pages and layouts.
func Default() *Config {
	cfg := &Config{}
	cfg.Project.ComponentsDir = "components"
	cfg.Project.ImportPrefix = "./components"
	cfg.Split.ReservedNames = []string{
		"App", "Root", "Main", "Index",
		"Page", "Layout", "Loading", "Error", "NotFound", "Template", "Document", "Head",
	}
	cfg.Split.RuntimeModule = "react"
	cfg.Split.RuntimeGlobal = "React"
	cfg.Split.HookPrefix = "use"
	cfg.Format.Quote = "single"
	cfg.Format.Indent = 2
	cfg.Format.Semicolons = true
	return cfg
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist. Environment variables (optionally via .env)
// override file values.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if prefix := os.Getenv("MODJSX_IMPORT_PREFIX"); prefix != "" {
		cfg.Project.ImportPrefix = prefix
	}
	if dir := os.Getenv("MODJSX_COMPONENTS_DIR"); dir != "" {
		cfg.Project.ComponentsDir = dir
	}
	if names := os.Getenv("MODJSX_RESERVED_NAMES"); names != "" {
		cfg.Split.ReservedNames = splitList(names)
	}
	if module := os.Getenv("MODJSX_RUNTIME_MODULE"); module != "" {
		cfg.Split.RuntimeModule = module
	}
	if global := os.Getenv("MODJSX_RUNTIME_GLOBAL"); global != "" {
		cfg.Split.RuntimeGlobal = global
	}
	if prefix := os.Getenv("MODJSX_HOOK_PREFIX"); prefix != "" {
		cfg.Split.HookPrefix = prefix
	}

	return cfg, nil
}

// ReservedSet returns the reserved entry names as a lookup set.
func (c *Config) ReservedSet() map[string]bool {
	set := make(map[string]bool, len(c.Split.ReservedNames))
	for _, name := range c.Split.ReservedNames {
		set[name] = true
	}
	return set
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
