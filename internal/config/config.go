// Package config holds the parameters of one dendrogram run.
//
// A Config starts from Default, may be overlaid by a YAML file and is then
// overridden by command line flags. It is validated once and passed by value
// to every stage. A YAML file looks like:
//
//	method: average
//	threshold: 0.4
//	scaling: 1.5
//	variants:
//	  - name: dissimilarity
//	    transform: absolute
//	  - name: signed
//	    transform: signed
//	palette: [C1, C2, C3]
//	above_threshold: black
//	colors:
//	  C1: "#ff7f0e"
//	save_linkage: true
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/KyungWonPark/corrdendro/internal/calc"
	"github.com/KyungWonPark/corrdendro/internal/cluster"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Variant is one named pass of the pipeline over the same input.
type Variant struct {
	Name      string `yaml:"name"`
	Transform string `yaml:"transform"`
}

// Config holds all run parameters.
type Config struct {
	Method    string    `yaml:"method"`
	Threshold float64   `yaml:"threshold"`
	Scaling   float64   `yaml:"scaling"`
	Variants  []Variant `yaml:"variants"`

	// Palette is the cycle of group tokens.
	Palette []string `yaml:"palette"`
	// AboveToken names the unclustered group.
	AboveToken string `yaml:"above_threshold"`
	// Colors maps tokens to "#rrggbb" for rendering.
	Colors map[string]string `yaml:"colors"`

	// Width and Height are the unscaled figure size in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Series means the matrix file holds one observation series per row
	// and correlations are computed first.
	Series bool `yaml:"series"`

	Workers     int  `yaml:"workers"`
	SaveMatrix  bool `yaml:"save_matrix"`
	SaveLinkage bool `yaml:"save_linkage"`
	CSV         bool `yaml:"csv"`
	Render      bool `yaml:"render"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Method:    "complete",
		Threshold: 6,
		Scaling:   1,
		Variants: []Variant{
			{Name: "dissimilarity", Transform: calc.Absolute.String()},
			{Name: "correlation", Transform: calc.Identity.String()},
		},
		Palette:    append([]string(nil), cluster.DefaultPalette...),
		AboveToken: cluster.DefaultAboveToken,
		Width:      5,
		Height:     12,
		Render:     true,
	}
}

// LoadFile overlays the YAML file at path onto base.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, base)
}

// Parse overlays YAML data onto base. Keys missing from data keep the value
// of base.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	cfg.Variants = append([]Variant(nil), base.Variants...)
	cfg.Palette = append([]string(nil), base.Palette...)
	if base.Colors != nil {
		cfg.Colors = make(map[string]string, len(base.Colors))
		for k, v := range base.Colors {
			cfg.Colors[k] = v
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

// LinkageMethod returns the parsed linkage method.
func (c Config) LinkageMethod() (cluster.Method, error) {
	return cluster.ParseMethod(c.Method)
}

// CutOptions returns the options for cutting trees.
func (c Config) CutOptions() cluster.CutOptions {
	return cluster.CutOptions{
		Threshold:  c.Threshold,
		Palette:    c.Palette,
		AboveToken: c.AboveToken,
	}
}

// Validate checks every field that a stage would otherwise reject late.
func (c Config) Validate() error {
	if _, err := c.LinkageMethod(); err != nil {
		return err
	}
	if c.Scaling <= 0 {
		return fmt.Errorf("%w: scaling must be positive, got %g", ErrInvalid, c.Scaling)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: figure size must be positive, got %gx%g", ErrInvalid, c.Width, c.Height)
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: no variants", ErrInvalid)
	}

	names := map[string]bool{}
	for _, v := range c.Variants {
		if v.Name == "" {
			return fmt.Errorf("%w: variant without name", ErrInvalid)
		}
		if names[v.Name] {
			return fmt.Errorf("%w: duplicate variant %q", ErrInvalid, v.Name)
		}
		names[v.Name] = true

		if _, err := calc.ParseTransform(v.Transform); err != nil {
			return fmt.Errorf("%w: variant %q: %v", ErrInvalid, v.Name, err)
		}
	}

	if c.AboveToken == "" {
		return fmt.Errorf("%w: empty above_threshold token", ErrInvalid)
	}
	for _, token := range c.Palette {
		if token == "" || token == c.AboveToken {
			return fmt.Errorf("%w: palette token %q", ErrInvalid, token)
		}
	}

	return nil
}
