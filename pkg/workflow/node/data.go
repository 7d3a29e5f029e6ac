package node

import (
	"encoding/json"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/condition"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Data is the type-specific payload of a node.
// It is implemented only by the variant types of this package.
type Data interface {
	// Type returns the node type this payload belongs to.
	Type() Type

	// Clone returns a deep copy.
	Clone() Data

	sealed()
}

// Output formats for model-backed nodes.
const (
	FormatText = "TEXT"
	FormatJSON = "JSON"
)

// Knowledge base search types.
const (
	SearchSimilarity = "similarity"
	SearchFulltext   = "fulltext"
)

// StartData declares the workflow inputs. They are the values a start node
// makes available downstream.
type StartData struct {
	InputVariables []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
}

// EndData collects the workflow outputs, usually by reference.
type EndData struct {
	OutputVariables []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// LLMData configures a language model call.
type LLMData struct {
	ModelID         int64               `json:"modelId,string" yaml:"modelId"`
	SystemPrompt    string              `json:"systemPrompt,omitempty" yaml:"systemPrompt,omitempty"`
	Prompt          string              `json:"prompt" yaml:"prompt"`
	Temperature     float64             `json:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
	TopP            float64             `json:"topP" yaml:"topP" validate:"gte=0,lte=1"`
	OutputFormat    string              `json:"outputFormat" yaml:"outputFormat" validate:"oneof=TEXT JSON"`
	InputVariables  []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
	OutputVariables []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// ConditionData holds the if / else-if branches of a condition node.
// The else branch is implicit.
type ConditionData struct {
	InputVariables []variable.Variable `json:"inputVariables,omitempty" yaml:"inputVariables,omitempty" validate:"dive"`
	Branches       []condition.Branch  `json:"branches" yaml:"branches" validate:"dive"`
}

// CrawlerData fetches the content behind a URL.
type CrawlerData struct {
	TimeoutSeconds  int                 `json:"timeout,omitempty" yaml:"timeout,omitempty" validate:"gte=0"`
	InputVariables  []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
	OutputVariables []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// KnowledgeRetrievalData searches a knowledge base.
type KnowledgeRetrievalData struct {
	KnowledgeBaseID     int64               `json:"kbId,string" yaml:"kbId"`
	SearchType          string              `json:"searchType" yaml:"searchType" validate:"oneof=similarity fulltext"`
	Count               int                 `json:"count" yaml:"count" validate:"gte=1"`
	SimilarityThreshold float64             `json:"similarityThreshold" yaml:"similarityThreshold" validate:"gte=0,lte=1"`
	InputVariables      []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
	OutputVariables     []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// KnowledgeWriteData writes content into a knowledge base. It produces no values.
type KnowledgeWriteData struct {
	KnowledgeBaseID int64               `json:"kbId,string" yaml:"kbId"`
	ChunkSize       int                 `json:"chunkSize,omitempty" yaml:"chunkSize,omitempty" validate:"gte=0"`
	InputVariables  []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
}

// WebSearchData queries a web search provider.
type WebSearchData struct {
	Provider        string              `json:"provider,omitempty" yaml:"provider,omitempty"`
	TopN            int                 `json:"topN" yaml:"topN" validate:"gte=1"`
	InputVariables  []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
	OutputVariables []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// KeywordExtractionData extracts keywords from a question with a model.
type KeywordExtractionData struct {
	ModelID         int64               `json:"modelId,string" yaml:"modelId"`
	InputVariables  []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
	OutputVariables []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// QuestionOptimizationData rewrites a question for retrieval with a model.
type QuestionOptimizationData struct {
	ModelID         int64               `json:"modelId,string" yaml:"modelId"`
	InputVariables  []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
	OutputVariables []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// ImageUnderstandingData asks a vision model about an image.
type ImageUnderstandingData struct {
	ModelID         int64               `json:"modelId,string" yaml:"modelId"`
	Prompt          string              `json:"prompt" yaml:"prompt"`
	OutputFormat    string              `json:"outputFormat" yaml:"outputFormat" validate:"oneof=TEXT JSON"`
	InputVariables  []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
	OutputVariables []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// OCRData extracts text from an image.
type OCRData struct {
	ModelID         int64               `json:"modelId,string" yaml:"modelId"`
	InputVariables  []variable.Variable `json:"inputVariables" yaml:"inputVariables" validate:"dive"`
	OutputVariables []variable.Variable `json:"outputVariables" yaml:"outputVariables" validate:"dive"`
}

// UnknownData keeps the raw payload of a node whose type is not known.
// Such nodes load and save unchanged but expose no variables.
type UnknownData struct {
	Tag Type
	Raw json.RawMessage
}

func (*StartData) Type() Type                { return TypeStart }
func (*EndData) Type() Type                  { return TypeEnd }
func (*LLMData) Type() Type                  { return TypeLLM }
func (*ConditionData) Type() Type            { return TypeCondition }
func (*CrawlerData) Type() Type              { return TypeCrawler }
func (*KnowledgeRetrievalData) Type() Type   { return TypeKnowledgeRetrieval }
func (*KnowledgeWriteData) Type() Type       { return TypeKnowledgeWrite }
func (*WebSearchData) Type() Type            { return TypeWebSearch }
func (*KeywordExtractionData) Type() Type    { return TypeKeywordExtraction }
func (*QuestionOptimizationData) Type() Type { return TypeQuestionOptimization }
func (*ImageUnderstandingData) Type() Type   { return TypeImageUnderstanding }
func (*OCRData) Type() Type                  { return TypeOCR }
func (d *UnknownData) Type() Type            { return d.Tag }

func (*StartData) sealed()                {}
func (*EndData) sealed()                  {}
func (*LLMData) sealed()                  {}
func (*ConditionData) sealed()            {}
func (*CrawlerData) sealed()              {}
func (*KnowledgeRetrievalData) sealed()   {}
func (*KnowledgeWriteData) sealed()       {}
func (*WebSearchData) sealed()            {}
func (*KeywordExtractionData) sealed()    {}
func (*QuestionOptimizationData) sealed() {}
func (*ImageUnderstandingData) sealed()   {}
func (*OCRData) sealed()                  {}
func (*UnknownData) sealed()              {}

// Clone implements Data.
func (d *StartData) Clone() Data {
	return &StartData{InputVariables: variable.Clone(d.InputVariables)}
}

// Clone implements Data.
func (d *EndData) Clone() Data {
	return &EndData{OutputVariables: variable.Clone(d.OutputVariables)}
}

// Clone implements Data.
func (d *LLMData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	out.OutputVariables = variable.Clone(d.OutputVariables)
	return &out
}

// Clone implements Data.
func (d *ConditionData) Clone() Data {
	return &ConditionData{
		InputVariables: variable.Clone(d.InputVariables),
		Branches:       condition.CloneBranches(d.Branches),
	}
}

// Clone implements Data.
func (d *CrawlerData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	out.OutputVariables = variable.Clone(d.OutputVariables)
	return &out
}

// Clone implements Data.
func (d *KnowledgeRetrievalData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	out.OutputVariables = variable.Clone(d.OutputVariables)
	return &out
}

// Clone implements Data.
func (d *KnowledgeWriteData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	return &out
}

// Clone implements Data.
func (d *WebSearchData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	out.OutputVariables = variable.Clone(d.OutputVariables)
	return &out
}

// Clone implements Data.
func (d *KeywordExtractionData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	out.OutputVariables = variable.Clone(d.OutputVariables)
	return &out
}

// Clone implements Data.
func (d *QuestionOptimizationData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	out.OutputVariables = variable.Clone(d.OutputVariables)
	return &out
}

// Clone implements Data.
func (d *ImageUnderstandingData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	out.OutputVariables = variable.Clone(d.OutputVariables)
	return &out
}

// Clone implements Data.
func (d *OCRData) Clone() Data {
	out := *d
	out.InputVariables = variable.Clone(d.InputVariables)
	out.OutputVariables = variable.Clone(d.OutputVariables)
	return &out
}

// Clone implements Data.
func (d *UnknownData) Clone() Data {
	return &UnknownData{Tag: d.Tag, Raw: append(json.RawMessage(nil), d.Raw...)}
}

// MarshalJSON writes the raw payload back unchanged.
func (d *UnknownData) MarshalJSON() ([]byte, error) {
	if len(d.Raw) == 0 {
		return []byte("null"), nil
	}
	return d.Raw, nil
}

// newData returns an empty payload for t, or nil for unknown types.
func newData(t Type) Data {
	switch t {
	case TypeStart:
		return &StartData{}
	case TypeEnd:
		return &EndData{}
	case TypeLLM:
		return &LLMData{}
	case TypeCondition:
		return &ConditionData{}
	case TypeCrawler:
		return &CrawlerData{}
	case TypeKnowledgeRetrieval:
		return &KnowledgeRetrievalData{}
	case TypeKnowledgeWrite:
		return &KnowledgeWriteData{}
	case TypeWebSearch:
		return &WebSearchData{}
	case TypeKeywordExtraction:
		return &KeywordExtractionData{}
	case TypeQuestionOptimization:
		return &QuestionOptimizationData{}
	case TypeImageUnderstanding:
		return &ImageUnderstandingData{}
	case TypeOCR:
		return &OCRData{}
	default:
		return nil
	}
}
