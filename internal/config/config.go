// Package config loads run configuration files.
//
// Configuration files are flat key/value documents in YAML (the default) or
// TOML (".toml" files). Values stay loosely typed because templates may
// reference any key; typed accessors convert on demand.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/komkom/toml"
	"gopkg.in/yaml.v3"

	"github.com/aria-lang/phyloprep-go/internal/numfmt"
)

// Format is a configuration file syntax.
type Format int

const (
	// YAML documents; tabs are treated as spaces.
	YAML Format = iota
	// TOML documents.
	TOML
	// JSON documents.
	JSON
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML
	case ".json":
		return JSON
	default:
		return YAML
	}
}

// Values holds decoded configuration entries.
type Values map[string]any

// Load reads and decodes a configuration file.
func Load(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	v, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return v, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (Values, error) {
	v := Values{}

	switch format {
	case TOML:
		dec := json.NewDecoder(toml.New(bytes.NewReader(data)))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
	default:
		data = bytes.ReplaceAll(data, []byte("\t"), []byte(" "))
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Has reports whether key is set to a non-null value.
func (v Values) Has(key string) bool {
	x, ok := v[key]
	return ok && x != nil
}

// Set stores a value.
func (v Values) Set(key string, value any) {
	v[key] = value
}

// String returns the value of key as text, or "" when unset.
func (v Values) String(key string) string {
	if !v.Has(key) {
		return ""
	}
	return numfmt.Value(v[key])
}

// Float returns the value of key as a float64.
func (v Values) Float(key string) (float64, error) {
	switch x := v[key].(type) {
	case nil:
		return 0, fmt.Errorf("config key %q is not set", key)
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("config key %q: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("config key %q: cannot use %T as a number", key, x)
	}
}

// Int returns the value of key as an int.
func (v Values) Int(key string) (int, error) {
	switch x := v[key].(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("config key %q: %w", key, err)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("config key %q: %w", key, err)
		}
		return i, nil
	case float64:
		if x != float64(int(x)) {
			return 0, fmt.Errorf("config key %q: %v is not an integer", key, x)
		}
		return int(x), nil
	case nil:
		return 0, fmt.Errorf("config key %q is not set", key)
	default:
		return 0, fmt.Errorf("config key %q: cannot use %T as an integer", key, x)
	}
}

// Strings returns all entries rendered as text.
func (v Values) Strings() map[string]string {
	out := make(map[string]string, len(v))
	for k := range v {
		out[k] = v.String(k)
	}
	return out
}
