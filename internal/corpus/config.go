package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional corpus driver configuration file.
type Config struct {
	Root         string `yaml:"root"`
	BaselinePath string `yaml:"baseline"`
	ReportPath   string `yaml:"report"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Root:         DefaultRoot,
		BaselinePath: "test/baseline.json",
		ReportPath:   "validation-report.md",
	}
}

// LoadConfig reads a YAML config file, filling unset fields with
// defaults. A missing file yields the defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.BaselinePath == "" {
		cfg.BaselinePath = "test/baseline.json"
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = "validation-report.md"
	}
	return cfg, nil
}
