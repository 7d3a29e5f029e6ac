package registry

import (
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Default returns a registry holding every built-in node type.
func Default() *Registry {
	return DefaultBuilder().Build()
}

// DefaultBuilder returns a builder pre-loaded with the built-in node types,
// for callers that want to add overrides before building.
func DefaultBuilder() *Builder {
	b := NewBuilder()
	for _, e := range builtins() {
		b.Register(e)
	}
	return b
}

// vars never returns nil so empty lists encode as [].
func vars(v ...variable.Variable) []variable.Variable {
	if v == nil {
		return []variable.Variable{}
	}
	return v
}

func builtins() []Entry {
	s := variable.New
	return []Entry{
		{
			Type:        node.TypeStart,
			Label:       "Start",
			Description: "Declares the workflow inputs",
			Prototype: func() node.Data {
				return &node.StartData{InputVariables: vars()}
			},
		},
		{
			Type:        node.TypeEnd,
			Label:       "End",
			Description: "Collects the workflow outputs",
			Prototype: func() node.Data {
				return &node.EndData{OutputVariables: vars()}
			},
		},
		{
			Type:        node.TypeLLM,
			Label:       "LLM",
			Description: "Generates content from a prompt and variables",
			Prototype: func() node.Data {
				return &node.LLMData{
					Temperature:     0.7,
					TopP:            1,
					OutputFormat:    node.FormatText,
					InputVariables:  vars(),
					OutputVariables: vars(s("output", variable.TypeString)),
				}
			},
		},
		{
			Type:        node.TypeCondition,
			Label:       "Condition",
			Description: "Routes to the first branch whose conditions hold",
			Prototype: func() node.Data {
				d := &node.ConditionData{}
				d.AddBranch()
				return d
			},
		},
		{
			Type:        node.TypeCrawler,
			Label:       "Crawler",
			Description: "Fetches the text content behind a URL",
			Prototype: func() node.Data {
				return &node.CrawlerData{
					TimeoutSeconds: 30,
					InputVariables: vars(s("url", variable.TypeString)),
					OutputVariables: vars(
						s("code", variable.TypeNumber),
						s("message", variable.TypeString),
						s("contentType", variable.TypeString),
						s("data", variable.TypeString),
					),
				}
			},
		},
		{
			Type:        node.TypeKnowledgeRetrieval,
			Label:       "Knowledge retrieval",
			Description: "Searches a knowledge base",
			Prototype: func() node.Data {
				return &node.KnowledgeRetrievalData{
					SearchType:          node.SearchSimilarity,
					Count:               5,
					SimilarityThreshold: 0.5,
					InputVariables:      vars(s("query", variable.TypeString)),
					OutputVariables: vars(
						s("total", variable.TypeNumber),
						s("documents", variable.TypeStringArray),
					),
				}
			},
		},
		{
			Type:        node.TypeKnowledgeWrite,
			Label:       "Knowledge write",
			Description: "Writes content into a knowledge base",
			Prototype: func() node.Data {
				return &node.KnowledgeWriteData{
					ChunkSize:      512,
					InputVariables: vars(s("content", variable.TypeString)),
				}
			},
		},
		{
			Type:        node.TypeWebSearch,
			Label:       "Web search",
			Description: "Searches the web",
			Prototype: func() node.Data {
				return &node.WebSearchData{
					Provider:       "bocha",
					TopN:           5,
					InputVariables: vars(s("query", variable.TypeString)),
					OutputVariables: vars(
						s("urls", variable.TypeStringArray),
						s("contents", variable.TypeStringArray),
					),
				}
			},
		},
		{
			Type:        node.TypeKeywordExtraction,
			Label:       "Keyword extraction",
			Description: "Extracts keywords from a question",
			Prototype: func() node.Data {
				return &node.KeywordExtractionData{
					InputVariables: vars(s("question", variable.TypeString)),
					OutputVariables: vars(
						s("keywords", variable.TypeStringArray),
						s("total", variable.TypeNumber),
					),
				}
			},
		},
		{
			Type:        node.TypeQuestionOptimization,
			Label:       "Question optimization",
			Description: "Rewrites a question for retrieval",
			Prototype: func() node.Data {
				return &node.QuestionOptimizationData{
					InputVariables:  vars(s("question", variable.TypeString)),
					OutputVariables: vars(s("output", variable.TypeString)),
				}
			},
		},
		{
			Type:        node.TypeImageUnderstanding,
			Label:       "Image understanding",
			Description: "Answers a prompt about an image",
			Prototype: func() node.Data {
				return &node.ImageUnderstandingData{
					OutputFormat:    node.FormatText,
					InputVariables:  vars(s("image", variable.TypeFile)),
					OutputVariables: vars(s("output", variable.TypeString)),
				}
			},
		},
		{
			Type:        node.TypeOCR,
			Label:       "OCR",
			Description: "Extracts text from an image",
			Prototype: func() node.Data {
				return &node.OCRData{
					InputVariables:  vars(s("image", variable.TypeFile)),
					OutputVariables: vars(s("text", variable.TypeString)),
				}
			},
		},
	}
}
