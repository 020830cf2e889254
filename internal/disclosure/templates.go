package disclosure

import "fmt"

// Template returns the empty questionnaire tree for a framework. The
// shapes intentionally differ: GRI and the other standards nest sections
// two to four levels deep, while SDG is a flat set of 17 goal entries.
func Template(id FrameworkID) *Node {
	switch id {
	case FrameworkSDG:
		return sdgTemplate()
	case FrameworkGRI:
		return griTemplate()
	case FrameworkTCFD:
		return tcfdTemplate()
	default:
		return genericTemplate(id)
	}
}

func leaf(id, name string) *Node {
	return NewLeaf(Field{ID: id, Name: name})
}

func sdgTemplate() *Node {
	goals := make(map[string]*Node, 17)
	for i := 1; i <= 17; i++ {
		key := fmt.Sprintf("goal-%d", i)
		goals[key] = NewBranch(map[string]*Node{
			sdgRelevanceKey:       leaf(key+"-relevance", "Relevance to business"),
			sdgPositiveImpactsKey: leaf(key+"-positive", "Positive impacts"),
			sdgNegativeImpactsKey: leaf(key+"-negative", "Negative impacts"),
		})
	}
	return NewBranch(goals)
}

func griTemplate() *Node {
	return NewBranch(map[string]*Node{
		"general": NewBranch(map[string]*Node{
			"organization": NewBranch(map[string]*Node{
				"2-1": leaf("2-1", "Organizational details"),
				"2-2": leaf("2-2", "Entities included in sustainability reporting"),
				"2-3": leaf("2-3", "Reporting period and frequency"),
			}),
			"governance": NewBranch(map[string]*Node{
				"2-9":  leaf("2-9", "Governance structure and composition"),
				"2-11": leaf("2-11", "Chair of the highest governance body"),
			}),
		}),
		"material": NewBranch(map[string]*Node{
			"emissions": NewBranch(map[string]*Node{
				"305-1": leaf("305-1", "Direct (Scope 1) GHG emissions"),
				"305-2": leaf("305-2", "Energy indirect (Scope 2) GHG emissions"),
				"305-3": leaf("305-3", "Other indirect (Scope 3) GHG emissions"),
			}),
			"energy": NewBranch(map[string]*Node{
				"302-1": leaf("302-1", "Energy consumption within the organization"),
			}),
		}),
	})
}

func tcfdTemplate() *Node {
	return NewBranch(map[string]*Node{
		"governance": NewBranch(map[string]*Node{
			"a": leaf("gov-a", "Board oversight of climate-related risks"),
			"b": leaf("gov-b", "Management's role in assessing climate risks"),
		}),
		"strategy": NewBranch(map[string]*Node{
			"a": leaf("str-a", "Climate-related risks and opportunities identified"),
			"b": leaf("str-b", "Impact on businesses, strategy, and planning"),
			"c": leaf("str-c", "Resilience under climate scenarios"),
		}),
		"riskManagement": NewBranch(map[string]*Node{
			"a": leaf("rm-a", "Processes for identifying climate risks"),
			"b": leaf("rm-b", "Processes for managing climate risks"),
		}),
		"metricsTargets": NewBranch(map[string]*Node{
			"a": leaf("mt-a", "Metrics used to assess climate risks"),
			"b": leaf("mt-b", "Scope 1, 2, 3 GHG emissions disclosure"),
			"c": leaf("mt-c", "Targets used to manage climate risks"),
		}),
	})
}

// genericTemplate covers the frameworks whose questionnaires share the
// same two-level section/field shape.
func genericTemplate(id FrameworkID) *Node {
	prefix := string(id)
	return NewBranch(map[string]*Node{
		"general": NewBranch(map[string]*Node{
			"scope":       leaf(prefix+"-scope", "Reporting scope and boundary"),
			"methodology": leaf(prefix+"-methodology", "Methodology statement"),
		}),
		"metrics": NewBranch(map[string]*Node{
			"emissions": leaf(prefix+"-emissions", "GHG emissions disclosure"),
			"targets":   leaf(prefix+"-targets", "Reduction targets"),
			"progress":  leaf(prefix+"-progress", "Progress against targets"),
		}),
	})
}
