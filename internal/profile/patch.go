package profile

import (
	"bytes"
	"fmt"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/beaconworks/devstrap/internal/messages"
)

// AddTools appends tool ids to the tools list of a profile document,
// preserving comments and existing formatting. Ids already selected are
// skipped; the returned boolean reports whether anything changed.
func AddTools(content string, ids []string) (string, bool, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return "", false, fmt.Errorf(messages.ProfilePatchParseErrFmt, err)
	}

	root := documentMapping(&doc)
	tools := mappingValue(root, "tools")
	if tools == nil {
		tools = &yaml.Node{Kind: yaml.SequenceNode}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "tools"},
			tools,
		)
	}

	existing := make(map[string]bool, len(tools.Content))
	for _, entry := range tools.Content {
		existing[normalizeID(entryID(entry))] = true
	}

	changed := false
	for _, id := range ids {
		if existing[normalizeID(id)] {
			continue
		}
		tools.Content = append(tools.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: id})
		existing[normalizeID(id)] = true
		changed = true
	}
	if !changed {
		return content, false, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return "", false, fmt.Errorf(messages.ProfilePatchRenderErrFmt, err)
	}
	if err := enc.Close(); err != nil {
		return "", false, fmt.Errorf(messages.ProfilePatchRenderErrFmt, err)
	}
	return buf.String(), true, nil
}

// documentMapping returns the top-level mapping of doc, materializing
// one for empty documents.
func documentMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind == 0 || len(doc.Content) == 0 {
		mapping := &yaml.Node{Kind: yaml.MappingNode}
		doc.Kind = yaml.DocumentNode
		doc.Content = []*yaml.Node{mapping}
		return mapping
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		root.Kind = yaml.MappingNode
		root.Tag = ""
		root.Value = ""
		root.Content = nil
	}
	return root
}

func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if strings.TrimSpace(mapping.Content[i].Value) == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// entryID extracts the tool id from either entry form: a bare scalar or
// a mapping with an id key.
func entryID(entry *yaml.Node) string {
	switch entry.Kind {
	case yaml.ScalarNode:
		return entry.Value
	case yaml.MappingNode:
		if id := mappingValue(entry, "id"); id != nil {
			return id.Value
		}
	}
	return ""
}
