package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON format implementation
// Decoding goes through the YAML parser, JSON being a subset of YAML, so
// both formats share one set of scalar rules.
// Encoding: an indented array of objects, keys in record order
var JSON = &RecordFormat{
	Name:       "json",
	Extensions: []string{".json"},
	Decode:     decodeNodes,
	Encode: func(records []Record) ([]byte, error) {
		var compact bytes.Buffer
		compact.WriteByte('[')
		for i, rec := range records {
			if i > 0 {
				compact.WriteByte(',')
			}
			compact.WriteByte('{')
			for j, f := range rec {
				if j > 0 {
					compact.WriteByte(',')
				}
				key, err := marshalJSON(f.Key)
				if err != nil {
					return nil, fmt.Errorf("record %d: failed to encode key %q: %w", i, f.Key, err)
				}
				value, err := marshalJSON(f.Value)
				if err != nil {
					return nil, fmt.Errorf("record %d: failed to encode %q: %w", i, f.Key, err)
				}
				compact.Write(key)
				compact.WriteByte(':')
				compact.Write(value)
			}
			compact.WriteByte('}')
		}
		compact.WriteByte(']')

		var out bytes.Buffer
		if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
			return nil, fmt.Errorf("failed to indent records: %w", err)
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	},
}

// marshalJSON encodes v without HTML escaping
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func init() {
	if err := Register(JSON); err != nil {
		panic(fmt.Sprintf("failed to register JSON format: %v", err))
	}
}
