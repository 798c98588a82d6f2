package workspace

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// encodeJSON renders a node tree decoded from JSON back to JSON with two-space
// indentation, keeping the key order of every object.
func encodeJSON(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNode(&buf, node, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, node *yaml.Node, depth int) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, node.Content[0], depth)
	case yaml.MappingNode:
		return writeMapping(buf, node, depth)
	case yaml.SequenceNode:
		return writeSequence(buf, node, depth)
	case yaml.AliasNode:
		return writeNode(buf, node.Alias, depth)
	default:
		return writeScalar(buf, node)
	}
}

func writeMapping(buf *bytes.Buffer, node *yaml.Node, depth int) error {
	if len(node.Content) == 0 {
		buf.WriteString("{}")
		return nil
	}

	buf.WriteString("{\n")
	for i := 0; i+1 < len(node.Content); i += 2 {
		indent(buf, depth+1)
		if err := writeString(buf, node.Content[i].Value); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := writeNode(buf, node.Content[i+1], depth+1); err != nil {
			return err
		}
		if i+2 < len(node.Content) {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	indent(buf, depth)
	buf.WriteByte('}')
	return nil
}

func writeSequence(buf *bytes.Buffer, node *yaml.Node, depth int) error {
	if len(node.Content) == 0 {
		buf.WriteString("[]")
		return nil
	}

	buf.WriteString("[\n")
	for i, item := range node.Content {
		indent(buf, depth+1)
		if err := writeNode(buf, item, depth+1); err != nil {
			return err
		}
		if i+1 < len(node.Content) {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	indent(buf, depth)
	buf.WriteByte(']')
	return nil
}

func writeScalar(buf *bytes.Buffer, node *yaml.Node) error {
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return writeString(buf, node.Value)
	}
	switch node.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool", "!!int", "!!float":
		buf.WriteString(node.Value)
		return nil
	default:
		return writeString(buf, node.Value)
	}
}

func writeString(buf *bytes.Buffer, s string) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.WriteString(strings.TrimSuffix(out.String(), "\n"))
	return nil
}

func indent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
}

// mappingEntry returns the value node stored under key, or nil.
func mappingEntry(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: yaml.DoubleQuotedStyle}
}

// setMappingEntry replaces the value under key, appending the key when missing.
func setMappingEntry(node *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = value
			return
		}
	}
	node.Content = append(node.Content, stringNode(key), value)
}
