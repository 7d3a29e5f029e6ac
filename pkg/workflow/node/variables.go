package node

import (
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/condition"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// InputVariables returns the input list of d.
// The returned slice shares its backing array with d, so element updates
// are visible in the payload.
func InputVariables(d Data) []variable.Variable {
	switch d := d.(type) {
	case *StartData:
		return d.InputVariables
	case *LLMData:
		return d.InputVariables
	case *ConditionData:
		return d.InputVariables
	case *CrawlerData:
		return d.InputVariables
	case *KnowledgeRetrievalData:
		return d.InputVariables
	case *KnowledgeWriteData:
		return d.InputVariables
	case *WebSearchData:
		return d.InputVariables
	case *KeywordExtractionData:
		return d.InputVariables
	case *QuestionOptimizationData:
		return d.InputVariables
	case *ImageUnderstandingData:
		return d.InputVariables
	case *OCRData:
		return d.InputVariables
	default:
		return nil
	}
}

// DeclaredOutputs returns the output list stored on d, sharing its backing
// array. Start nodes store none; see OutputVariables.
func DeclaredOutputs(d Data) []variable.Variable {
	switch d := d.(type) {
	case *EndData:
		return d.OutputVariables
	case *LLMData:
		return d.OutputVariables
	case *CrawlerData:
		return d.OutputVariables
	case *KnowledgeRetrievalData:
		return d.OutputVariables
	case *WebSearchData:
		return d.OutputVariables
	case *KeywordExtractionData:
		return d.OutputVariables
	case *QuestionOptimizationData:
		return d.OutputVariables
	case *ImageUnderstandingData:
		return d.OutputVariables
	case *OCRData:
		return d.OutputVariables
	default:
		return nil
	}
}

// OutputVariables returns the values d makes available to descendants.
// A start node exposes its declared inputs. Condition, knowledge write and
// unknown payloads expose nothing.
func OutputVariables(d Data) []variable.Variable {
	if s, ok := d.(*StartData); ok {
		return s.InputVariables
	}
	return DeclaredOutputs(d)
}

// Operands returns pointers to every branch operand of a condition payload,
// or nil for other payloads.
func Operands(d Data) []*condition.Operand {
	c, ok := d.(*ConditionData)
	if !ok {
		return nil
	}
	var ops []*condition.Operand
	for i := range c.Branches {
		ops = append(ops, c.Branches[i].Operands()...)
	}
	return ops
}

// AddBranch appends a new branch and returns its handle.
func (d *ConditionData) AddBranch() string {
	b := condition.NewBranch()
	d.Branches = append(d.Branches, b)
	return b.Handle
}

// RemoveBranch removes the branch with the given handle.
// Reports whether a branch was removed. The else branch cannot be removed.
func (d *ConditionData) RemoveBranch(handle string) bool {
	if handle == condition.ElseHandle {
		return false
	}
	for i := range d.Branches {
		if d.Branches[i].Handle == handle {
			d.Branches = append(d.Branches[:i], d.Branches[i+1:]...)
			return true
		}
	}
	return false
}

// Branch returns the branch with the given handle, or nil.
func (d *ConditionData) Branch(handle string) *condition.Branch {
	for i := range d.Branches {
		if d.Branches[i].Handle == handle {
			return &d.Branches[i]
		}
	}
	return nil
}

// HasHandle reports whether an edge may leave the node through handle.
// The else handle always exists.
func (d *ConditionData) HasHandle(handle string) bool {
	return handle == condition.ElseHandle || d.Branch(handle) != nil
}

// Handles returns the branch handles in order, excluding the else handle.
func (d *ConditionData) Handles() []string {
	handles := make([]string, len(d.Branches))
	for i, b := range d.Branches {
		handles[i] = b.Handle
	}
	return handles
}
