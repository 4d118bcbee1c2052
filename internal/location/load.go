package location

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a gazetteer extension.
type File struct {
	Places  []Place           `yaml:"places" toml:"places"`
	Aliases map[string]string `yaml:"aliases" toml:"aliases"`
}

// LoadFile builds a gazetteer from the built-in tables extended with the
// places and aliases in path. The format is chosen by extension: .yaml,
// .yml or .toml.
func LoadFile(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from operator config
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read gazetteer file %s", path)
	}

	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "gazetteer file %s", path)
	}

	return New(WithPlaces(f.Places...), WithAliases(f.Aliases)), nil
}

// Parse decodes and validates extension data in the format named by ext.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML")
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to parse TOML")
		}
	default:
		return nil, errors.Errorf("unsupported gazetteer format %q", ext)
	}

	if err := f.Validate(); err != nil {
		return nil, errors.Wrap(err, "gazetteer validation failed")
	}
	return &f, nil
}

// Validate checks that every place has a name and coordinates in range,
// and that no alias points at another alias, counting the built-in ones,
// so normalizing a canonical name always returns it unchanged.
func (f *File) Validate() error {
	for i, p := range f.Places {
		if clean(p.Name) == "" {
			return errors.Errorf("place %d: name is required", i)
		}
		if p.Lat < -90 || p.Lat > 90 {
			return errors.Errorf("place %q: latitude %v out of range", p.Name, p.Lat)
		}
		if p.Lon < -180 || p.Lon > 180 {
			return errors.Errorf("place %q: longitude %v out of range", p.Name, p.Lon)
		}
	}
	merged := make(map[string]string, len(defaultAliases)+len(f.Aliases))
	for alias, canonical := range defaultAliases {
		merged[alias] = canonical
	}
	for alias, canonical := range f.Aliases {
		if clean(alias) == "" || clean(canonical) == "" {
			return errors.Errorf("alias %q: alias and canonical name are required", alias)
		}
		merged[clean(alias)] = clean(canonical)
	}

	aliases := make([]string, 0, len(merged))
	for alias := range merged {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		canonical := merged[alias]
		if canonical == alias {
			continue
		}
		if _, chained := merged[canonical]; chained {
			return errors.Errorf("alias %q: canonical name %q is itself an alias", alias, canonical)
		}
	}
	return nil
}
