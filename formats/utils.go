package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// isBlank checks if a document contains only whitespace
func isBlank(data []byte) bool {
	return strings.TrimSpace(string(data)) == ""
}

// kindName names a node kind for error messages
func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", kind)
	}
}

// resolveAlias follows alias nodes to the node they point at
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
