// Package config holds the generator options and their loaders.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Option keys. Keys may also be given with the Prefix.
const (
	KeyVerify  = "verify"
	KeyComment = "comment"
	KeyVerbose = "verbose"
	KeyMarker  = "marker"

	Prefix = "servicegen."
)

// DefaultMarker is the directive name of the marker, as in //servicegen:service.
const DefaultMarker = "service"

var (
	// ErrUnknownOption is returned for keys that are not options.
	ErrUnknownOption = errors.New("unknown option")
	// ErrUnsupportedFormat is returned for config files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Options control the manifest processor.
type Options struct {
	// Verify enables the inheritance check; when false every pair is accepted.
	Verify bool
	// Comment wraps manifests in a banner comment.
	Comment bool
	// Verbose enables per-contract processing traces.
	Verbose bool
	// Marker is the directive name marking service implementations.
	Marker string
}

// Default returns the default options.
func Default() Options {
	return Options{
		Verify:  false,
		Comment: true,
		Verbose: false,
		Marker:  DefaultMarker,
	}
}

// Apply overrides o with key-value pairs, as passed by the build tool layer.
func (o Options) Apply(kv map[string]string) (Options, error) {
	for _, key := range slices.Sorted(maps.Keys(kv)) {
		value := strings.TrimSpace(kv[key])

		switch strings.TrimPrefix(strings.TrimSpace(key), Prefix) {
		case KeyVerify:
			b, err := parseBool(key, value)
			if err != nil {
				return o, err
			}
			o.Verify = b

		case KeyComment:
			b, err := parseBool(key, value)
			if err != nil {
				return o, err
			}
			o.Comment = b

		case KeyVerbose:
			b, err := parseBool(key, value)
			if err != nil {
				return o, err
			}
			o.Verbose = b

		case KeyMarker:
			if value == "" {
				return o, fmt.Errorf("option %q: empty marker", key)
			}
			o.Marker = value

		default:
			return o, fmt.Errorf("%w %q", ErrUnknownOption, key)
		}
	}

	return o, nil
}

// FromMap returns the defaults overridden by kv.
func FromMap(kv map[string]string) (Options, error) {
	return Default().Apply(kv)
}

// Fingerprint returns a stable string identifying the options that affect output.
func (o Options) Fingerprint() string {
	return fmt.Sprintf("verify=%t;comment=%t;marker=%s", o.Verify, o.Comment, o.Marker)
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("option %q: %w", key, err)
	}

	return b, nil
}

// file mirrors the config file layout:
//
//	verify = true
//	comment = false
//	[options]
//	"servicegen.verbose" = "true"
type file struct {
	Verify  *bool             `toml:"verify" yaml:"verify"`
	Comment *bool             `toml:"comment" yaml:"comment"`
	Verbose *bool             `toml:"verbose" yaml:"verbose"`
	Marker  string            `toml:"marker" yaml:"marker"`
	Options map[string]string `toml:"options" yaml:"options"`
}

// Load reads a TOML or YAML config file and applies it on top of base.
func Load(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}

	var f file

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return base, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return base, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return base, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}

	o := base
	if f.Verify != nil {
		o.Verify = *f.Verify
	}
	if f.Comment != nil {
		o.Comment = *f.Comment
	}
	if f.Verbose != nil {
		o.Verbose = *f.Verbose
	}
	if f.Marker != "" {
		o.Marker = f.Marker
	}

	o, err = o.Apply(f.Options)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}

	return o, nil
}

// ParseKeyValues parses "key=value" pairs as given on the command line.
func ParseKeyValues(pairs []string) (map[string]string, error) {
	kv := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid option %q, want key=value", pair)
		}
		kv[strings.TrimSpace(key)] = value
	}

	return kv, nil
}
