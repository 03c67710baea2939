package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_SetKeepsDeclarationOrder(t *testing.T) {
	tree := NewTree()
	tree.Set("deploy", &Node{Children: NewTree()})
	tree.Set("build", &Node{Children: NewTree()})
	tree.Set("compose", &Node{Children: NewTree()})

	assert.Equal(t, []string{"deploy", "build", "compose"}, tree.Keys())
	assert.Equal(t, 3, tree.Len())
}

func TestTree_SetReplaceKeepsPosition(t *testing.T) {
	tree := NewTree()
	tree.Set("a", &Node{Children: NewTree()})
	tree.Set("b", &Node{Children: NewTree()})
	replacement := &Node{Binding: &Binding{Resolver: "x", Options: Options{}}}
	tree.Set("a", replacement)

	assert.Equal(t, []string{"a", "b"}, tree.Keys())
	node, ok := tree.Child("a")
	require.True(t, ok)
	assert.Same(t, replacement, node)
}

func TestTree_KeysReturnsCopy(t *testing.T) {
	tree := NewTree()
	tree.Set("a", &Node{Children: NewTree()})

	keys := tree.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"a"}, tree.Keys())
}

func TestTree_NilSafe(t *testing.T) {
	var tree *Tree

	assert.Equal(t, []string{}, tree.Keys())
	assert.Equal(t, 0, tree.Len())
	_, ok := tree.Child("a")
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		tree.Walk(func([]string, *Node) {})
	})
}

func TestTree_Walk(t *testing.T) {
	tree := FromMap(map[string]any{
		"compose": map[string]any{
			"$$docker-compose": map[string]any{"file": "docker-compose.yml"},
		},
		"deploy": map[string]any{
			"staging":    nil,
			"production": nil,
		},
	})

	var visited [][]string
	tree.Walk(func(path []string, _ *Node) {
		visited = append(visited, path)
	})

	assert.Equal(t, [][]string{
		{"compose"},
		{"deploy"},
		{"deploy", "production"},
		{"deploy", "staging"},
	}, visited)
}

func TestBuildNode(t *testing.T) {
	t.Run("scalar is a leaf", func(t *testing.T) {
		node := buildNode("anything")
		require.NotNil(t, node.Children)
		assert.False(t, node.IsPlugin())
		assert.Equal(t, 0, node.Children.Len())
	})

	t.Run("null is a leaf", func(t *testing.T) {
		node := buildNode(nil)
		assert.False(t, node.IsPlugin())
		assert.Equal(t, 0, node.Children.Len())
	})

	t.Run("plugin marker becomes binding", func(t *testing.T) {
		opts := newObject()
		opts.set("file", "docker-compose.yml")
		obj := newObject()
		obj.set("$$docker-compose", opts)

		node := buildNode(obj)
		require.True(t, node.IsPlugin())
		assert.Equal(t, "docker-compose", node.Binding.Resolver)
		assert.Equal(t, Options{"file": "docker-compose.yml"}, node.Binding.Options)
		assert.Empty(t, node.Shadowed)
		assert.Nil(t, node.Children)
	})

	t.Run("plugin marker wins over sibling keys", func(t *testing.T) {
		obj := newObject()
		obj.set("up", nil)
		obj.set("$$docker-compose", newObject())
		obj.set("down", nil)

		node := buildNode(obj)
		require.True(t, node.IsPlugin())
		assert.Equal(t, []string{"up", "down"}, node.Shadowed)
		assert.NotNil(t, node.Binding.Options)
	})

	t.Run("non-object plugin options are empty", func(t *testing.T) {
		obj := newObject()
		obj.set("$$docker-compose", true)

		node := buildNode(obj)
		require.True(t, node.IsPlugin())
		assert.Equal(t, Options{}, node.Binding.Options)
	})

	t.Run("bare sentinel is a literal key", func(t *testing.T) {
		obj := newObject()
		obj.set("$$", nil)

		node := buildNode(obj)
		assert.False(t, node.IsPlugin())
		assert.Equal(t, []string{"$$"}, node.Children.Keys())
	})
}

func TestFromMap_SortsKeys(t *testing.T) {
	tree := FromMap(map[string]any{"zeta": nil, "alpha": nil, "mid": map[string]any{"b": 1, "a": 2}})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, tree.Keys())
	mid, ok := tree.Child("mid")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, mid.Children.Keys())
}

func TestObject_ToMapIsRecursive(t *testing.T) {
	inner := newObject()
	inner.set("file", "compose.yml")
	obj := newObject()
	obj.set("nested", inner)
	obj.set("list", []any{inner})

	assert.Equal(t, map[string]any{
		"nested": map[string]any{"file": "compose.yml"},
		"list":   []any{map[string]any{"file": "compose.yml"}},
	}, obj.toMap())
}
