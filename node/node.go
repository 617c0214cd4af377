// Package node defines the in-memory tree model for decoded submissions.
//
// A Node is a typed, ordered, attribute-bearing tree element. Trees are
// built once by a decoder and are read-only during validation: PutValue
// and Append are construction-time operations only. Nodes do not hold a
// reference to their parent; paths are derived on demand from a root.
package node

import (
	"iter"

	"github.com/goqpp/validator/pool"
)

// Node is one decoded structural unit of a submission document.
type Node struct {
	template TemplateID

	// values keeps every put for an attribute name so that validators can
	// detect ambiguous (multiply-decoded) attributes. Value returns the
	// first put; ValueCount exposes the multiplicity.
	values map[string][]string

	children []*Node
}

// New creates a node with the given template identifier.
func New(template TemplateID) *Node {
	return &Node{
		template: template,
		values:   make(map[string][]string, 4),
	}
}

// Template returns the node's template identifier.
func (n *Node) Template() TemplateID {
	return n.template
}

// PutValue records an attribute value. Repeated puts for the same name are
// retained so single-valuedness checks can flag the ambiguity. Only used
// during tree construction.
func (n *Node) PutValue(name, value string) *Node {
	n.values[name] = append(n.values[name], value)
	return n
}

// Value returns the first recorded value for the attribute, and whether
// the attribute is present at all.
func (n *Node) Value(name string) (string, bool) {
	vs, ok := n.values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// ValueCount returns how many values were recorded for the attribute.
func (n *Node) ValueCount(name string) int {
	return len(n.values[name])
}

// Append adds child nodes in document order. Only used during tree
// construction; the children are exclusively owned by this node.
func (n *Node) Append(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// Children returns the direct children in document order.
// The returned slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildNodes returns a lazy sequence of direct children whose template
// matches any of the given identifiers, in document order. With no
// identifiers it yields every child.
func (n *Node) ChildNodes(templates ...TemplateID) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, child := range n.children {
			if len(templates) > 0 && !matchesAny(child.template, templates) {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// CountChildren returns the number of direct children with the template.
func (n *Node) CountChildren(template TemplateID) int {
	count := 0
	for _, child := range n.children {
		if child.template == template {
			count++
		}
	}
	return count
}

// FindFirst returns the first descendant (depth-first, document order)
// with the given template, or nil. The receiver itself is not considered.
func (n *Node) FindFirst(template TemplateID) *Node {
	for _, child := range n.children {
		if child.template == template {
			return child
		}
		if found := child.FindFirst(template); found != nil {
			return found
		}
	}
	return nil
}

func matchesAny(t TemplateID, templates []TemplateID) bool {
	for _, want := range templates {
		if t == want {
			return true
		}
	}
	return false
}

// Path derives the human-readable locator of target within the tree rooted
// at root, recomputing the ancestor chain rather than consulting a stored
// back-pointer. It returns "" when target is not part of the tree. Indices
// count same-template siblings, e.g.
// "clinicalDocument.measureSection[0].measureReferenceResults[1]".
func Path(root, target *Node) string {
	if root == nil || target == nil {
		return ""
	}
	pb := pool.AcquirePathBuilder()
	defer pb.Release()

	pb.Push(root.template.Name(), -1)
	if root == target {
		return pb.String()
	}
	if locate(root, target, pb) {
		return pb.String()
	}
	return ""
}

func locate(current, target *Node, pb *pool.PathBuilder) bool {
	indexes := make(map[TemplateID]int, 4)
	for _, child := range current.children {
		idx := indexes[child.template]
		indexes[child.template] = idx + 1

		pb.Push(child.template.Name(), idx)
		if child == target || locate(child, target, pb) {
			return true
		}
		pb.Pop()
	}
	return false
}
