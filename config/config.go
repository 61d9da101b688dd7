// Package config — .chlang.yaml project configuration.
//
// The file is optional. When it is absent every setting falls back to
// the built-in defaults: rewrite .cpp files, use the default exclusion
// markers and wrap translations in _("...").
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/chlang/filter"
	"github.com/minios-linux/chlang/rewrite"
	"github.com/minios-linux/chlang/sources"
)

// FileName is the default config file name, looked up in the tree root.
const FileName = ".chlang.yaml"

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .chlang.yaml structure.
type File struct {
	// Extensions are the file suffixes rewritten by a tree walk.
	Extensions []string `yaml:"extensions,omitempty"`
	// ExcludeMarkers replaces the default exclusion rule set when set.
	ExcludeMarkers []string `yaml:"exclude_markers,omitempty"`
	// ExtraMarkers are appended to the exclusion rule set.
	ExtraMarkers []string `yaml:"extra_markers,omitempty"`
	// SkipDirs are directory names the walk never enters.
	SkipDirs []string `yaml:"skip_dirs,omitempty"`
	// Wrapper is the localization call name (default "_").
	Wrapper string `yaml:"wrapper,omitempty"`

	// path is where the file was read from; empty for defaults.
	path string
}

// Default returns the configuration used when no file exists.
func Default() *File {
	f := &File{}
	f.applyDefaults()
	return f
}

func (f *File) applyDefaults() {
	if len(f.Extensions) == 0 {
		f.Extensions = append([]string(nil), sources.DefaultExtensions...)
	}
	if f.SkipDirs == nil {
		f.SkipDirs = append([]string(nil), sources.DefaultSkipDirs...)
	}
	if f.Wrapper == "" {
		f.Wrapper = rewrite.DefaultWrapper
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads and validates a config file. A missing file is an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.path = path

	if err := f.validate(); err != nil {
		return nil, err
	}
	f.applyDefaults()
	return &f, nil
}

// LoadDir reads FileName from dir, returning Default() when it does not
// exist.
func LoadDir(dir string) (*File, error) {
	f, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return f, err
}

func (f *File) validate() error {
	for _, ext := range f.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%s: extension %q must start with a dot", f.path, ext)
		}
	}
	if strings.ContainsAny(f.Wrapper, " \t\"()") {
		return fmt.Errorf("%s: invalid wrapper %q", f.path, f.Wrapper)
	}
	return nil
}

// Path returns the file the configuration came from, or "" for defaults.
func (f *File) Path() string {
	return f.path
}

// Markers resolves the exclusion rule set.
func (f *File) Markers() []string {
	base := filter.DefaultMarkers
	if len(f.ExcludeMarkers) > 0 {
		base = f.ExcludeMarkers
	}
	markers := append([]string(nil), base...)
	return append(markers, f.ExtraMarkers...)
}

// Filter builds the exclusion filter for this configuration.
func (f *File) Filter() *filter.Filter {
	return filter.New(f.Markers()...)
}
