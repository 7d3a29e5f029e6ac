package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/store"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) store.Store

// sampleDefinition returns start -> llm -> end with bound references.
func sampleDefinition() workflow.Definition {
	return workflow.Definition{
		Nodes: []*node.Node{
			{ID: "start", Type: node.TypeStart, Name: "Start", Data: &node.StartData{
				InputVariables: []variable.Variable{variable.New("input", variable.TypeString)},
			}},
			{ID: "llm", Type: node.TypeLLM, Name: "llm", Data: &node.LLMData{
				Temperature:  0.7,
				TopP:         1,
				OutputFormat: node.FormatText,
				InputVariables: []variable.Variable{
					variable.Bound("prompt", variable.TypeString, variable.Reference{SourceNode: "start", SourceName: "input"}),
				},
				OutputVariables: []variable.Variable{variable.New("output", variable.TypeString)},
			}},
			{ID: "end", Type: node.TypeEnd, Name: "End", Data: &node.EndData{
				OutputVariables: []variable.Variable{
					variable.Bound("answer", variable.TypeString, variable.Reference{SourceNode: "llm", SourceName: "output"}),
				},
			}},
		},
		Edges: []node.Edge{
			{ID: "e1", Source: "start", Target: "llm"},
			{ID: "e2", Source: "llm", Target: "end"},
		},
	}
}

func assertSameDefinition(t *testing.T, want, got workflow.Definition) {
	t.Helper()
	wantJSON, err := want.Marshal()
	require.NoError(t, err)
	gotJSON, err := got.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	ctx := context.Background()

	t.Run(name+"/Save_and_Load", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		def := sampleDefinition()
		require.NoError(t, s.Save(ctx, "wf-1", def))

		loaded, err := s.Load(ctx, "wf-1")
		require.NoError(t, err)
		assertSameDefinition(t, def, loaded)

		llm := loaded.Nodes[1].Data.(*node.LLMData)
		ref, err := llm.InputVariables[0].Value.Reference()
		require.NoError(t, err)
		assert.Equal(t, "start.input", ref.String())
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Load(ctx, "wf-missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run(name+"/Save_EmptyID", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		err := s.Save(ctx, "", sampleDefinition())
		assert.ErrorIs(t, err, store.ErrEmptyID)
	})

	t.Run(name+"/Save_Overwrite", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save(ctx, "wf-1", sampleDefinition()))

		smaller := sampleDefinition()
		smaller.Nodes = smaller.Nodes[:1]
		smaller.Edges = nil
		require.NoError(t, s.Save(ctx, "wf-1", smaller))

		loaded, err := s.Load(ctx, "wf-1")
		require.NoError(t, err)
		require.Len(t, loaded.Nodes, 1)
		assert.Equal(t, "start", loaded.Nodes[0].ID)
		assert.Empty(t, loaded.Edges)
	})

	t.Run(name+"/Save_CopiesDefinition", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		def := sampleDefinition()
		require.NoError(t, s.Save(ctx, "wf-1", def))
		def.Nodes[0].Name = "changed"

		loaded, err := s.Load(ctx, "wf-1")
		require.NoError(t, err)
		assert.Equal(t, "Start", loaded.Nodes[0].Name)
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		infos, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, infos)
		assert.Empty(t, infos)
	})

	t.Run(name+"/List_OrderedByID", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		small := workflow.Definition{Nodes: sampleDefinition().Nodes[:1]}
		require.NoError(t, s.Save(ctx, "wf-c", sampleDefinition()))
		require.NoError(t, s.Save(ctx, "wf-a", small))
		require.NoError(t, s.Save(ctx, "wf-b", sampleDefinition()))

		infos, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 3)

		assert.Equal(t, "wf-a", infos[0].ID)
		assert.Equal(t, "wf-b", infos[1].ID)
		assert.Equal(t, "wf-c", infos[2].ID)

		assert.Equal(t, 1, infos[0].Nodes)
		assert.Equal(t, 0, infos[0].Edges)
		assert.Equal(t, 3, infos[2].Nodes)
		assert.Equal(t, 2, infos[2].Edges)
		assert.Positive(t, infos[2].Size)
		assert.False(t, infos[2].UpdatedAt.IsZero())
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save(ctx, "wf-1", sampleDefinition()))
		require.NoError(t, s.Save(ctx, "wf-2", sampleDefinition()))
		require.NoError(t, s.Delete(ctx, "wf-1"))

		_, err := s.Load(ctx, "wf-1")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Load(ctx, "wf-2")
		assert.NoError(t, err)
	})

	t.Run(name+"/Delete_Missing", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		assert.NoError(t, s.Delete(ctx, "wf-missing"))
	})

	t.Run(name+"/Loaded_Definition_Builds_Graph", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save(ctx, "wf-1", sampleDefinition()))
		loaded, err := s.Load(ctx, "wf-1")
		require.NoError(t, err)

		ancestors, err := workflow.AncestorsOf("end", loaded.Nodes, loaded.Edges)
		require.NoError(t, err)
		require.Len(t, ancestors, 2)
		assert.Equal(t, "llm", ancestors[0].ID)
		assert.Equal(t, "start", ancestors[1].ID)
	})
}

// closedStoreTest verifies operations after Close fail with ErrStoreClosed.
func closedStoreTest(t *testing.T, name string, factory storeFactory) {
	ctx := context.Background()

	t.Run(name+"/Closed", func(t *testing.T) {
		s := factory(t)
		require.NoError(t, s.Save(ctx, "wf-1", sampleDefinition()))
		require.NoError(t, s.Close())

		assert.ErrorIs(t, s.Save(ctx, "wf-2", sampleDefinition()), store.ErrStoreClosed)

		_, err := s.Load(ctx, "wf-1")
		assert.ErrorIs(t, err, store.ErrStoreClosed)

		_, err = s.List(ctx)
		assert.ErrorIs(t, err, store.ErrStoreClosed)

		assert.ErrorIs(t, s.Delete(ctx, "wf-1"), store.ErrStoreClosed)

		assert.NoError(t, s.Close(), "second close is a no-op")
	})
}
