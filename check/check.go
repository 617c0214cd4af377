// Package check provides the fluent structural assertion chain used by
// every validator. A Checker is bound to one node and one derived path;
// each assertion produces at most one Detail into the shared result.
//
// Validators compose these primitives instead of hand-writing
// conditionals so that messages, paths and short-circuit behavior stay
// uniform across the whole validator catalog.
package check

import (
	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/node"
)

// Checker runs a chain of structural assertions against a single node.
type Checker struct {
	node   *node.Node
	path   string
	result *qv.Result
	source string

	// incomplete skips remaining assertions once one has failed,
	// preventing cascades of derivative findings behind a violated
	// prerequisite.
	incomplete bool
	failed     bool
}

// Thoroughly returns a checker that evaluates every assertion in the
// chain, accumulating each failure into result.
func Thoroughly(n *node.Node, path string, result *qv.Result) *Checker {
	return &Checker{node: n, path: path, result: result}
}

// From sets the source recorded on details produced by this chain.
func (c *Checker) From(source string) *Checker {
	c.source = source
	return c
}

// IncompleteValidation marks the chain so that once any assertion has
// failed, subsequent assertions are skipped rather than evaluated.
func (c *Checker) IncompleteValidation() *Checker {
	c.incomplete = true
	return c
}

// Failed reports whether any assertion in the chain has failed.
func (c *Checker) Failed() bool {
	return c.failed
}

// Passed reports whether every evaluated assertion succeeded.
func (c *Checker) Passed() bool {
	return !c.failed
}

// SingleValue asserts that the node carries exactly one value for the
// attribute: absence and multiply-decoded ambiguity both fail.
func (c *Checker) SingleValue(message, name string) *Checker {
	if c.skip() {
		return c
	}
	if c.node.ValueCount(name) != 1 {
		c.fail(message)
	}
	return c
}

// Value asserts that the attribute is present and equals expected.
func (c *Checker) Value(message, name, expected string) *Checker {
	if c.skip() {
		return c
	}
	if v, ok := c.node.Value(name); !ok || v != expected {
		c.fail(message)
	}
	return c
}

// HasValue asserts that the attribute is present.
func (c *Checker) HasValue(message, name string) *Checker {
	if c.skip() {
		return c
	}
	if _, ok := c.node.Value(name); !ok {
		c.fail(message)
	}
	return c
}

// ChildMinimum asserts that at least minimum direct children carry one of
// the given templates.
func (c *Checker) ChildMinimum(message string, minimum int, templates ...node.TemplateID) *Checker {
	if c.skip() {
		return c
	}
	if c.countChildren(templates) < minimum {
		c.fail(message)
	}
	return c
}

// ChildMaximum asserts that at most maximum direct children carry one of
// the given templates.
func (c *Checker) ChildMaximum(message string, maximum int, templates ...node.TemplateID) *Checker {
	if c.skip() {
		return c
	}
	if c.countChildren(templates) > maximum {
		c.fail(message)
	}
	return c
}

// HasMeasures asserts that for every given identifier some descendant
// carries it as its measureId attribute.
func (c *Checker) HasMeasures(message string, measureIDs ...string) *Checker {
	if c.skip() {
		return c
	}
	for _, id := range measureIDs {
		if !hasMeasure(c.node, id) {
			c.fail(message)
			return c
		}
	}
	return c
}

func (c *Checker) skip() bool {
	return c.incomplete && c.failed
}

func (c *Checker) fail(message string) {
	c.failed = true
	c.result.AddDetail(qv.Detail{Message: message, Path: c.path, Source: c.source})
}

func (c *Checker) countChildren(templates []node.TemplateID) int {
	count := 0
	for range c.node.ChildNodes(templates...) {
		count++
	}
	return count
}

func hasMeasure(n *node.Node, measureID string) bool {
	for _, child := range n.Children() {
		if id, ok := child.Value("measureId"); ok && id == measureID {
			return true
		}
		if hasMeasure(child, measureID) {
			return true
		}
	}
	return false
}
