// Package config loads a flatdatac.yaml project file: the list of schema
// files a `flatdatac check --project` invocation should compile together,
// plus an optional list of shared schema fragments to prepend ahead of
// every file, mirroring go-corset's embedded stdlib-prelude pattern
// translated to flatdata schema text. Parsed with goccy/go-yaml, grounded
// on go.jacobcolvin.com/x's go.mod.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Project is the parsed contents of a flatdatac.yaml file.
type Project struct {
	// Schemas lists the schema files to compile, in order, relative to the
	// project file's own directory.
	Schemas []string `yaml:"schemas"`

	// Stdlib lists shared schema fragments prepended, in order, ahead of
	// every file in Schemas, relative to the project file's own directory.
	Stdlib []string `yaml:"stdlib"`
}

// Load reads and parses the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", path, err)
	}
	if len(p.Schemas) == 0 {
		return nil, fmt.Errorf("project file %s declares no schemas", path)
	}
	return &p, nil
}

// ResolvePaths returns Stdlib followed by Schemas, each resolved relative
// to the directory containing the project file at projectPath.
func (p *Project) ResolvePaths(projectPath string) []string {
	dir := filepath.Dir(projectPath)
	out := make([]string, 0, len(p.Stdlib)+len(p.Schemas))
	for _, s := range p.Stdlib {
		out = append(out, filepath.Join(dir, s))
	}
	for _, s := range p.Schemas {
		out = append(out, filepath.Join(dir, s))
	}
	return out
}
