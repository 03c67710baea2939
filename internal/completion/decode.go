package completion

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// DecodeJSON builds a tree from a JSON object, keeping key order.
// Empty input and null yield an empty tree.
func DecodeJSON(data []byte) (*Tree, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return NewTree(), nil
	}
	if data[0] != '{' {
		return nil, fmt.Errorf("completion must be an object")
	}

	obj, err := decodeJSONObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode completion tree: %w", err)
	}
	return buildTree(obj), nil
}

func decodeJSONObject(data []byte) (*object, error) {
	pairs := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, pairs); err != nil {
		return nil, err
	}

	obj := newObject()
	for pair := pairs.Oldest(); pair != nil; pair = pair.Next() {
		value, err := decodeJSONValue(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", pair.Key, err)
		}
		obj.set(pair.Key, value)
	}
	return obj, nil
}

func decodeJSONValue(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		return decodeJSONObject(raw)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// DecodeYAML builds a tree from a YAML mapping node, keeping key order.
// A nil or zero node yields an empty tree.
func DecodeYAML(node *yaml.Node) (*Tree, error) {
	if node == nil || node.Kind == 0 {
		return NewTree(), nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return NewTree(), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("completion must be a mapping (line %d)", node.Line)
	}

	obj, err := decodeYAMLMapping(node)
	if err != nil {
		return nil, fmt.Errorf("failed to decode completion tree: %w", err)
	}
	return buildTree(obj), nil
}

func decodeYAMLMapping(node *yaml.Node) (*object, error) {
	obj := newObject()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		decoded, err := decodeYAMLValue(value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key.Value, err)
		}
		obj.set(key.Value, decoded)
	}
	return obj, nil
}

func decodeYAMLValue(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.MappingNode {
		return decodeYAMLMapping(node)
	}

	var value any
	if err := node.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}
