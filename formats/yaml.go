package formats

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// YAML format implementation
// Decoding: the document must be a sequence of flat mappings with scalar
// values. Key order is kept.
// Encoding: block style, two-space indent, keys in record order
var YAML = &RecordFormat{
	Name:       "yaml",
	Extensions: []string{".yaml", ".yml"},
	Decode:     decodeNodes,
	Encode: func(records []Record) ([]byte, error) {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i, rec := range records {
			m := &yaml.Node{Kind: yaml.MappingNode}
			for _, f := range rec {
				k := &yaml.Node{}
				k.SetString(f.Key)
				v := &yaml.Node{}
				if err := v.Encode(f.Value); err != nil {
					return nil, fmt.Errorf("record %d: failed to encode %q: %w", i, f.Key, err)
				}
				m.Content = append(m.Content, k, v)
			}
			seq.Content = append(seq.Content, m)
		}

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(seq); err != nil {
			return nil, fmt.Errorf("failed to encode records: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode records: %w", err)
		}
		return buf.Bytes(), nil
	},
}

// decodeNodes parses data with the YAML parser into records. JSON input is
// accepted too.
func decodeNodes(data []byte) ([]Record, error) {
	if isBlank(data) {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of records, got a %s", root.Line, kindName(root.Kind))
	}

	records := make([]Record, 0, len(root.Content))
	for i, item := range root.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: record %d is a %s, expected a mapping", item.Line, i, kindName(item.Kind))
		}

		rec := make(Record, 0, len(item.Content)/2)
		seen := make(map[string]bool, len(item.Content)/2)
		for k := 0; k+1 < len(item.Content); k += 2 {
			keyNode := resolveAlias(item.Content[k])
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: record %d has a %s key", keyNode.Line, i, kindName(keyNode.Kind))
			}
			key := keyNode.Value
			if seen[key] {
				return nil, fmt.Errorf("line %d: record %d repeats key %q", keyNode.Line, i, key)
			}
			seen[key] = true

			value, err := scalarValue(resolveAlias(item.Content[k+1]))
			if err != nil {
				return nil, fmt.Errorf("record %d, key %q: %w", i, key, err)
			}
			rec = append(rec, Field{Key: key, Value: value})
		}
		records = append(records, rec)
	}

	return records, nil
}

func scalarValue(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: nested %s values are not supported", n.Line, kindName(n.Kind))
	}

	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!str":
		return n.Value, nil
	case "!!timestamp":
		// Decoding into any would leave timestamps as strings
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return t, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

func init() {
	if err := Register(YAML); err != nil {
		panic(fmt.Sprintf("failed to register YAML format: %v", err))
	}
}
