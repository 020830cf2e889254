// Package disclosure models framework questionnaires and tracks their
// completion.
//
// A framework's disclosure data is a tree of named sections ending in
// leaf fields. The tree is a tagged variant (Leaf or Branch) rather than
// a duck-typed map, so the walk is explicit and malformed trees fail at
// decode time instead of being silently miscounted.
package disclosure

import (
	"encoding/json"
	"fmt"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrUnknownFramework indicates a framework identifier outside the
	// nine supported frameworks.
	ErrUnknownFramework = constError("unknown framework")

	// ErrMalformedTree indicates a disclosure tree node that is neither
	// a leaf nor a branch.
	ErrMalformedTree = constError("malformed disclosure tree")
)

// FrameworkID identifies one of the supported reporting frameworks.
type FrameworkID string

const (
	FrameworkGRI  FrameworkID = "gri"
	FrameworkTCFD FrameworkID = "tcfd"
	FrameworkSBTi FrameworkID = "sbti"
	FrameworkCSRD FrameworkID = "csrd"
	FrameworkCDP  FrameworkID = "cdp"
	FrameworkSDG  FrameworkID = "sdg"
	FrameworkSASB FrameworkID = "sasb"
	FrameworkISSB FrameworkID = "issb"
	FrameworkPCAF FrameworkID = "pcaf"
)

// AllFrameworks returns the supported framework identifiers in display
// order.
func AllFrameworks() []FrameworkID {
	return []FrameworkID{
		FrameworkGRI, FrameworkTCFD, FrameworkSBTi, FrameworkCSRD,
		FrameworkCDP, FrameworkSDG, FrameworkSASB, FrameworkISSB,
		FrameworkPCAF,
	}
}

// ParseFrameworkID validates a framework identifier string.
func ParseFrameworkID(s string) (FrameworkID, error) {
	id := FrameworkID(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFrameworks() {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFramework, s)
}

// Field is a single atomic disclosure data point, e.g. GRI "2-1".
type Field struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Value is the entered answer: a string, a number, or nil when
	// unanswered. Numeric zero is a real answer.
	Value any `json:"value"`

	// Completed is derived from Value on every save; it is stored so
	// exports and older clients can read it without re-deriving.
	Completed bool `json:"completed"`
}

// Refresh re-derives the Completed flag from Value.
func (f *Field) Refresh() {
	f.Completed = IsComplete(f.Value)
}

// IsComplete reports whether a field value counts as answered: non-nil
// and non-empty after trimming its string form. Numeric 0 is complete.
func IsComplete(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	default:
		return strings.TrimSpace(fmt.Sprint(val)) != ""
	}
}

// Node is one position in a disclosure tree: exactly one of Leaf or
// Branch is set.
type Node struct {
	Leaf   *Field
	Branch map[string]*Node
}

// NewLeaf wraps a field as a leaf node.
func NewLeaf(f Field) *Node {
	return &Node{Leaf: &f}
}

// NewBranch creates a branch node over the given children.
func NewBranch(children map[string]*Node) *Node {
	return &Node{Branch: children}
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Leaf != nil
}

// Child returns the named child of a branch node, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil || n.Branch == nil {
		return nil
	}
	return n.Branch[name]
}

// MarshalJSON encodes a leaf as its field object and a branch as a plain
// object of children, matching the persisted wire form.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch {
	case n.Leaf != nil:
		return json.Marshal(n.Leaf)
	case n.Branch != nil:
		return json.Marshal(n.Branch)
	default:
		return nil, ErrMalformedTree
	}
}

// UnmarshalJSON decodes a node, classifying any object carrying a
// "completed" key as a leaf and every other object as a branch.
func (n *Node) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}

	if _, isLeaf := probe["completed"]; isLeaf {
		var f Field
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedTree, err)
		}
		n.Leaf = &f
		n.Branch = nil
		return nil
	}

	children := make(map[string]*Node, len(probe))
	for name, raw := range probe {
		child := &Node{}
		if err := child.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("node %q: %w", name, err)
		}
		children[name] = child
	}
	n.Branch = children
	n.Leaf = nil
	return nil
}

// Walk visits every leaf in the tree depth-first. Branch order is not
// specified.
func (n *Node) Walk(visit func(*Field)) {
	if n == nil {
		return
	}
	if n.Leaf != nil {
		visit(n.Leaf)
		return
	}
	for _, child := range n.Branch {
		child.Walk(visit)
	}
}

// FindField returns the leaf with the given field ID, or nil.
func (n *Node) FindField(id string) *Field {
	var found *Field
	n.Walk(func(f *Field) {
		if found == nil && f.ID == id {
			found = f
		}
	})
	return found
}
