package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/condition"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

func TestType_Valid(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.Valid(), typ)
		d := newData(typ)
		require.NotNil(t, d, typ)
		assert.Equal(t, typ, d.Type())
	}
	assert.False(t, Type("translator").Valid())
	assert.False(t, Type("").Valid())
}

func TestNode_Label(t *testing.T) {
	assert.Equal(t, "Summarize", (&Node{ID: "n1", Name: "Summarize"}).Label())
	assert.Equal(t, "n1", (&Node{ID: "n1"}).Label())
}

func TestNode_Clone_Deep(t *testing.T) {
	n := &Node{
		ID:   "llm1",
		Type: TypeLLM,
		Data: &LLMData{
			Prompt: "hi",
			InputVariables: []variable.Variable{
				variable.Bound("q", variable.TypeRef, variable.Reference{SourceNode: "start", SourceName: "query"}),
			},
		},
	}

	cp := n.Clone()
	cp.Data.(*LLMData).InputVariables[0].Value.Clear()
	cp.Data.(*LLMData).Prompt = "changed"

	orig := n.Data.(*LLMData)
	assert.Equal(t, "hi", orig.Prompt)
	assert.True(t, orig.InputVariables[0].Value.IsRef())
	assert.Nil(t, (*Node)(nil).Clone())
}

func TestEdge_Same(t *testing.T) {
	a := Edge{ID: "e1", Source: "a", Target: "b"}
	b := Edge{ID: "e1", Source: "x", Target: "y"}
	assert.True(t, a.Same(b))

	c := Edge{Source: "a", Target: "b", SourceHandle: "h"}
	assert.True(t, c.Same(Edge{Source: "a", Target: "b", SourceHandle: "h"}))
	assert.False(t, c.Same(Edge{Source: "a", Target: "b"}))
	assert.True(t, Edge{ID: "x", Source: "a", Target: "b"}.SameEndpoints(Edge{ID: "y", Source: "a", Target: "b"}))
	assert.False(t, Edge{ID: "x", Source: "a", Target: "b"}.Same(Edge{ID: "y", Source: "a", Target: "b"}))
	assert.False(t, c.SameEndpoints(Edge{Source: "a", Target: "b"}))
	assert.True(t, c.Touches("a"))
	assert.True(t, c.Touches("b"))
	assert.False(t, c.Touches("z"))
}

func TestOutputVariables(t *testing.T) {
	start := &StartData{InputVariables: []variable.Variable{variable.New("query", variable.TypeString)}}
	llm := &LLMData{OutputVariables: []variable.Variable{variable.New("output", variable.TypeString)}}

	tests := []struct {
		name string
		data Data
		want []string
	}{
		{"start exposes inputs", start, []string{"query"}},
		{"llm", llm, []string{"output"}},
		{"condition", &ConditionData{}, nil},
		{"knowledge write", &KnowledgeWriteData{InputVariables: []variable.Variable{variable.New("content", variable.TypeString)}}, nil},
		{"unknown", &UnknownData{Tag: "translator"}, nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, v := range OutputVariables(tt.data) {
				names = append(names, v.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	assert.Nil(t, DeclaredOutputs(start))
}

func TestInputVariables_SharesBacking(t *testing.T) {
	d := &CrawlerData{InputVariables: []variable.Variable{
		variable.Bound("url", variable.TypeRef, variable.Reference{SourceNode: "a", SourceName: "b"}),
	}}
	InputVariables(d)[0].Value.Clear()
	assert.True(t, d.InputVariables[0].Value.IsCleared())
}

func TestConditionData_Branches(t *testing.T) {
	d := &ConditionData{}
	h1 := d.AddBranch()
	h2 := d.AddBranch()
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, []string{h1, h2}, d.Handles())
	assert.True(t, d.HasHandle(h1))
	assert.True(t, d.HasHandle(condition.ElseHandle))
	assert.False(t, d.HasHandle("missing"))

	assert.Len(t, Operands(d), 4)
	assert.Nil(t, Operands(&LLMData{}))

	assert.False(t, d.RemoveBranch(condition.ElseHandle))
	assert.True(t, d.RemoveBranch(h1))
	assert.False(t, d.RemoveBranch(h1))
	assert.Equal(t, []string{h2}, d.Handles())
	assert.Nil(t, d.Branch(h1))
	require.NotNil(t, d.Branch(h2))
}

func TestNode_JSON(t *testing.T) {
	in := `{
		"id": "kr",
		"type": "knowledgeRetrieval",
		"name": "Docs",
		"position": {"x": 10, "y": 20},
		"data": {
			"kbId": "42",
			"searchType": "similarity",
			"count": 5,
			"similarityThreshold": 0.5,
			"inputVariables": [
				{"name": "query", "type": "ref", "value": {"type": "ref", "content": "start.query"}}
			],
			"outputVariables": [
				{"name": "total", "type": "number", "value": {"type": "literal"}}
			]
		}
	}`

	var n Node
	require.NoError(t, json.Unmarshal([]byte(in), &n))
	d, ok := n.Data.(*KnowledgeRetrievalData)
	require.True(t, ok)
	assert.Equal(t, int64(42), d.KnowledgeBaseID)
	assert.Equal(t, Position{X: 10, Y: 20}, n.Position)

	ref, err := d.InputVariables[0].Value.Reference()
	require.NoError(t, err)
	assert.Equal(t, variable.Reference{SourceNode: "start", SourceName: "query"}, ref)

	out, err := json.Marshal(&n)
	require.NoError(t, err)
	var back Node
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, n, back)
}

func TestNode_JSON_UnknownType(t *testing.T) {
	in := `{"id":"x","type":"translator","data":{"lang":"de"}}`

	var n Node
	require.NoError(t, json.Unmarshal([]byte(in), &n))
	u, ok := n.Data.(*UnknownData)
	require.True(t, ok)
	assert.Equal(t, Type("translator"), u.Type())
	assert.Nil(t, OutputVariables(u))

	out, err := json.Marshal(&n)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"data":{"lang":"de"}`)
}

func TestDecodeData(t *testing.T) {
	d, err := DecodeData(TypeLLM, nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = DecodeData(TypeLLM, json.RawMessage(" null "))
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = DecodeData(TypeLLM, json.RawMessage(`{"temperature":"hot"}`))
	assert.Error(t, err)
}
