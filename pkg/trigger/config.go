package trigger

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chazu/autotrig/pkg/brush"
)

// Config is the YAML shape of an options file. Every field is optional;
// zero values fall back to the same defaults the flags use.
type Config struct {
	Materials  []string         `yaml:"materials"`
	Offset     float64          `yaml:"offset"`
	Categories []string         `yaml:"categories"`
	UpwardOnly bool             `yaml:"upward_only"`
	Prefix     string           `yaml:"prefix"`
	Tolerances brush.Tolerances `yaml:"tolerances"`
}

// LoadConfig reads and decodes a YAML options file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trigger: read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("trigger: parse config %s: %w", path, err)
	}
	return &c, nil
}

// Options converts the decoded config into run options, validating
// category names.
func (c *Config) Options() (Options, error) {
	opts := Options{
		Materials:  c.Materials,
		Offset:     c.Offset,
		UpwardOnly: c.UpwardOnly,
		Prefix:     c.Prefix,
		Tolerances: c.Tolerances,
	}
	if len(c.Categories) > 0 {
		opts.Categories = make(map[brush.SurfaceCategory]bool, len(c.Categories))
		for _, name := range c.Categories {
			cat, err := brush.ParseCategory(name)
			if err != nil {
				return Options{}, err
			}
			opts.Categories[cat] = true
		}
	}
	return opts, nil
}
