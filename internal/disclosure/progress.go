package disclosure

import "math"

// Progress is the completion summary for one framework instance.
type Progress struct {
	// Percent is the rounded 0-100 completion percentage.
	Percent int `json:"percent"`

	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ProgressComputer computes completion for a disclosure tree. Frameworks
// with bespoke completion semantics (SDG) get their own implementation;
// everything else uses the generic leaf rule.
type ProgressComputer func(root *Node) Progress

// ComputerFor selects the progress strategy for a framework.
func ComputerFor(id FrameworkID) ProgressComputer {
	if id == FrameworkSDG {
		return SDGProgress
	}
	return GenericProgress
}

// GenericProgress walks the tree counting every leaf, completed when its
// value is non-empty. Tolerates arbitrary nesting depth and heterogeneous
// branch widths.
func GenericProgress(root *Node) Progress {
	var p Progress
	root.Walk(func(f *Field) {
		p.Total++
		if IsComplete(f.Value) {
			p.Completed++
		}
	})
	p.Percent = roundPercent(p.Completed, p.Total)
	return p
}

// SDG leaf names consulted by the custom completion rule.
const (
	sdgRelevanceKey       = "relevance"
	sdgPositiveImpactsKey = "positiveImpacts"
	sdgNegativeImpactsKey = "negativeImpacts"
)

// SDGProgress counts each of the 17 goals as a single unit. A goal is
// complete when its relevance is answered and at least one of its impact
// fields is answered; other fields under the goal do not affect
// completion.
func SDGProgress(root *Node) Progress {
	var p Progress
	if root == nil || root.Branch == nil {
		return p
	}

	for _, goal := range root.Branch {
		p.Total++
		if sdgGoalComplete(goal) {
			p.Completed++
		}
	}
	p.Percent = roundPercent(p.Completed, p.Total)
	return p
}

func sdgGoalComplete(goal *Node) bool {
	relevance := leafValue(goal, sdgRelevanceKey)
	positive := leafValue(goal, sdgPositiveImpactsKey)
	negative := leafValue(goal, sdgNegativeImpactsKey)

	return IsComplete(relevance) && (IsComplete(positive) || IsComplete(negative))
}

// leafValue returns the value of a named leaf child, or nil when absent.
func leafValue(n *Node, name string) any {
	child := n.Child(name)
	if child == nil || child.Leaf == nil {
		return nil
	}
	return child.Leaf.Value
}

// RefreshCompletion re-derives every leaf's Completed flag from its
// value. Called on save before progress is computed.
func RefreshCompletion(root *Node) {
	root.Walk(func(f *Field) {
		f.Refresh()
	})
}

// roundPercent returns round(100*completed/total), 0 for an empty tree.
// Percentages are rounded, not truncated.
func roundPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
