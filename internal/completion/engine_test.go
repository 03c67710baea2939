package completion

import (
	"context"
	"testing"

	"github.com/NikitaCOEUR/scriptrun/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingResolver captures the arguments of its last call
type recordingResolver struct {
	calls   int
	args    []string
	current string
	opts    Options
	env     Env
	result  []string
}

func (r *recordingResolver) Resolve(_ context.Context, args []string, current string, opts Options, env Env) []string {
	r.calls++
	r.args = args
	r.current = current
	r.opts = opts
	r.env = env
	return r.result
}

func testTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := DecodeJSON([]byte(`{
		"deploy": {"staging": {"--dry-run": {}}, "production": {}},
		"compose": {"$$docker-compose": {"file": "docker-compose.yml"}},
		"build": {}
	}`))
	require.NoError(t, err)
	return tree
}

func newTestEngine(t *testing.T, resolver Resolver) *Engine {
	t.Helper()
	registry := NewRegistry()
	if resolver != nil {
		require.NoError(t, registry.Register("docker-compose", resolver))
	}
	return NewEngine(registry, logger.Discard())
}

func TestEngine_NoArgsReturnsTopLevelKeys(t *testing.T) {
	engine := newTestEngine(t, nil)

	for _, current := range []string{"", "d", "--x"} {
		got := engine.Complete(context.Background(), Request{Tree: testTree(t), Current: current})
		assert.Equal(t, []string{"deploy", "compose", "build"}, got)
	}
}

func TestEngine_Descends(t *testing.T) {
	engine := newTestEngine(t, nil)
	tree := testTree(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "one level", args: []string{"deploy"}, want: []string{"staging", "production"}},
		{name: "two levels", args: []string{"deploy", "staging"}, want: []string{"--dry-run"}},
		{name: "leaf", args: []string{"build"}, want: []string{}},
		{name: "past a leaf", args: []string{"build", "extra"}, want: []string{}},
		{name: "unknown top-level word", args: []string{"unknown"}, want: []string{"deploy", "compose", "build"}},
		{name: "unknown word keeps previous frontier", args: []string{"deploy", "qa", "staging"}, want: []string{"staging", "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Complete(context.Background(), Request{Tree: tree, Args: tt.args})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_DelegatesRemainingWords(t *testing.T) {
	resolver := &recordingResolver{result: []string{"web", "db"}}
	engine := newTestEngine(t, resolver)
	tree := testTree(t)

	got := engine.Complete(context.Background(), Request{
		Tree:    tree,
		Args:    []string{"compose", "logs", "-f"},
		Current: "w",
		BaseDir: "/project",
	})

	assert.Equal(t, []string{"web", "db"}, got)
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, []string{"logs", "-f"}, resolver.args)
	assert.Equal(t, "w", resolver.current)
	assert.Equal(t, Options{"file": "docker-compose.yml"}, resolver.opts)
	assert.Equal(t, "/project", resolver.env.BaseDir)
	assert.Equal(t, []string{"compose", "logs", "-f"}, resolver.env.Args)
	assert.Same(t, tree, resolver.env.Tree)
	assert.NotNil(t, resolver.env.Log)
}

func TestEngine_DelegatesWithNoRemainingWords(t *testing.T) {
	resolver := &recordingResolver{result: []string{"up", "down"}}
	engine := newTestEngine(t, resolver)

	got := engine.Complete(context.Background(), Request{Tree: testTree(t), Args: []string{"compose"}})

	assert.Equal(t, []string{"up", "down"}, got)
	assert.Empty(t, resolver.args)
}

func TestEngine_ResolverResultIsVerbatim(t *testing.T) {
	resolver := &recordingResolver{result: []string{"b", "a", "b"}}
	engine := newTestEngine(t, resolver)

	got := engine.Complete(context.Background(), Request{Tree: testTree(t), Args: []string{"compose", "x"}})

	assert.Equal(t, []string{"b", "a", "b"}, got)
}

func TestEngine_NilResolverResultBecomesEmpty(t *testing.T) {
	resolver := &recordingResolver{result: nil}
	engine := newTestEngine(t, resolver)

	got := engine.Complete(context.Background(), Request{Tree: testTree(t), Args: []string{"compose"}})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEngine_UnknownPlugin(t *testing.T) {
	engine := newTestEngine(t, nil)

	got := engine.Complete(context.Background(), Request{Tree: testTree(t), Args: []string{"compose", "up"}})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEngine_UnknownPluginShadowsSiblings(t *testing.T) {
	resolver := &recordingResolver{result: []string{"web"}}
	engine := newTestEngine(t, resolver)
	tree, err := DecodeJSON([]byte(`{
		"deploy": {"$$k8s": {"namespace": "apps"}, "staging": {}, "production": {}}
	}`))
	require.NoError(t, err)

	for _, args := range [][]string{{"deploy"}, {"deploy", "staging"}} {
		got := engine.Complete(context.Background(), Request{Tree: tree, Args: args})
		assert.Equal(t, []string{}, got)
	}
	assert.Zero(t, resolver.calls)
}

func TestEngine_NilTree(t *testing.T) {
	engine := NewEngine(nil, nil)

	got := engine.Complete(context.Background(), Request{Args: []string{"anything"}})

	assert.Equal(t, []string{}, got)
}

func TestEngine_Idempotent(t *testing.T) {
	resolver := &recordingResolver{result: []string{"web", "db"}}
	engine := newTestEngine(t, resolver)
	tree := testTree(t)
	req := Request{Tree: tree, Args: []string{"deploy"}}

	first := engine.Complete(context.Background(), req)
	second := engine.Complete(context.Background(), req)
	assert.Equal(t, first, second)

	req = Request{Tree: tree, Args: []string{"compose", "logs"}}
	assert.Equal(t, engine.Complete(context.Background(), req), engine.Complete(context.Background(), req))
}

func TestEngine_ResultDoesNotAliasTree(t *testing.T) {
	engine := newTestEngine(t, nil)
	tree := testTree(t)

	got := engine.Complete(context.Background(), Request{Tree: tree})
	got[0] = "mutated"

	assert.Equal(t, []string{"deploy", "compose", "build"}, tree.Keys())
}
