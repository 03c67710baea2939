package completion

import (
	"sort"
	"strings"
)

// PluginPrefix marks a tree key that delegates to a registered resolver
const PluginPrefix = "$$"

// Options holds plugin-specific settings taken from the configuration
type Options map[string]any

// Binding ties a tree node to a resolver
type Binding struct {
	Resolver string  // Resolver identifier, without PluginPrefix
	Options  Options // Never nil
}

// Node is one edge target of a Tree: either a subtree or a plugin binding
type Node struct {
	Children *Tree
	Binding  *Binding
	// Shadowed lists sibling keys dropped because a plugin marker was present
	Shadowed []string
}

// IsPlugin reports whether the node delegates to a resolver
func (n *Node) IsPlugin() bool {
	return n != nil && n.Binding != nil
}

// Tree is an ordered mapping from literal tokens to nodes
type Tree struct {
	keys  []string
	nodes map[string]*Node
}

// NewTree creates an empty tree
func NewTree() *Tree {
	return &Tree{nodes: make(map[string]*Node)}
}

// Set adds or replaces the node for key. A new key is appended after the
// existing ones; replacing keeps the original position.
func (t *Tree) Set(key string, node *Node) {
	if _, exists := t.nodes[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.nodes[key] = node
}

// Child returns the node registered for key
func (t *Tree) Child(key string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	node, ok := t.nodes[key]
	return node, ok
}

// Keys returns the tokens of the tree in declaration order
func (t *Tree) Keys() []string {
	if t == nil {
		return []string{}
	}
	return append(make([]string, 0, len(t.keys)), t.keys...)
}

// Len returns the number of direct children
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Walk visits every node depth-first in declaration order. path holds the
// tokens leading to the node, the node's own token last.
func (t *Tree) Walk(fn func(path []string, node *Node)) {
	t.walk(nil, fn)
}

func (t *Tree) walk(prefix []string, fn func(path []string, node *Node)) {
	if t == nil {
		return
	}
	for _, key := range t.keys {
		node := t.nodes[key]
		path := append(append([]string{}, prefix...), key)
		fn(path, node)
		if node.Children != nil {
			node.Children.walk(path, fn)
		}
	}
}

// object is the ordered intermediate form shared by every config decoder
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

func (o *object) set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// toMap flattens the ordered form into plain maps for plugin options
func (o *object) toMap() map[string]any {
	m := make(map[string]any, len(o.keys))
	for _, key := range o.keys {
		m[key] = plain(o.values[key])
	}
	return m
}

func plain(v any) any {
	switch val := v.(type) {
	case *object:
		return val.toMap()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

func buildTree(obj *object) *Tree {
	tree := NewTree()
	if obj == nil {
		return tree
	}
	for _, key := range obj.keys {
		tree.Set(key, buildNode(obj.values[key]))
	}
	return tree
}

// buildNode turns a configuration value into a node. Objects become subtrees
// unless one of their keys carries PluginPrefix, in which case the first such
// key wins and its value becomes the plugin options. Scalars and null are leaves.
func buildNode(value any) *Node {
	obj, ok := value.(*object)
	if !ok {
		return &Node{Children: NewTree()}
	}

	for _, key := range obj.keys {
		id, isPlugin := strings.CutPrefix(key, PluginPrefix)
		if !isPlugin || id == "" {
			continue
		}
		node := &Node{Binding: &Binding{Resolver: id, Options: Options{}}}
		if opts, ok := obj.values[key].(*object); ok {
			node.Binding.Options = opts.toMap()
		}
		for _, sibling := range obj.keys {
			if sibling != key {
				node.Shadowed = append(node.Shadowed, sibling)
			}
		}
		return node
	}

	return &Node{Children: buildTree(obj)}
}

// FromMap builds a tree from an unordered map, listing keys sorted
func FromMap(m map[string]any) *Tree {
	return buildTree(objectFromMap(m))
}

func objectFromMap(m map[string]any) *object {
	obj := newObject()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if nested, ok := m[k].(map[string]any); ok {
			obj.set(k, objectFromMap(nested))
			continue
		}
		obj.set(k, m[k])
	}
	return obj
}
