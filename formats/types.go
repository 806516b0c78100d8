// Package formats reads and writes record files: a top-level list of flat
// mappings whose keys are attribute names.
package formats

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Field is one attribute of a record. Value is nil, string, bool, int,
// uint64 (integers above MaxInt64), float64 or time.Time.
type Field struct {
	Key   string
	Value any
}

// Record is a flat mapping that keeps the key order of the source file
type Record []Field

// Get returns the value stored under key
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the record's keys in file order
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// RecordFormat defines how record files are decoded and encoded
type RecordFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Extensions lists the file extensions including the dot (e.g., ".yaml")
	Extensions []string

	// Decode parses a whole file. An empty document holds no records.
	Decode func(data []byte) ([]Record, error)

	// Encode renders records in order, keeping each record's key order
	Encode func(records []Record) ([]byte, error)
}

// registry holds all available record formats
var registry = make(map[string]*RecordFormat)

// Register adds a new record format to the registry
func Register(format *RecordFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}

	// Normalize extensions
	for i, ext := range format.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		format.Extensions[i] = ext
	}

	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a record format by name
func Get(name string) (*RecordFormat, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q", name)
	}
	return format, nil
}

// ForPath picks the format registered for the path's extension
func ForPath(path string) (*RecordFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, fmt.Errorf("cannot pick a format for %q: no file extension", path)
	}

	for _, name := range List() {
		format := registry[name]
		if slices.Contains(format.Extensions, ext) {
			return format, nil
		}
	}
	return nil, fmt.Errorf("no format registered for extension %q (known formats: %s)",
		ext, strings.Join(List(), ", "))
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
