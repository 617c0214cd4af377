// Package registry maps template identifiers to the validators
// responsible for them and orchestrates the per-node and
// per-template-group validation passes over a decoded tree.
package registry

import (
	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/node"
)

// Located pairs a node with its derived tree path. Paths are computed by
// the dispatcher during its walk so validators never re-derive them.
type Located struct {
	Node *node.Node
	Path string
}

// Validator checks nodes of the template(s) it is registered for.
//
// Validators must be stateless across invocations: all accumulated
// findings go through the supplied result, and the only other inputs are
// the node(s) and the immutable configuration store they were constructed
// with. A non-nil error means an invariant was violated and the document's
// pass must abort.
type Validator interface {
	// Name identifies the validator in Detail.Source.
	Name() string

	// ValidateSingleNode checks one node in isolation.
	ValidateSingleNode(loc Located, result *qv.Result) error

	// ValidateSameTemplateNodes checks all of a template's nodes together,
	// in document order, for cross-node consistency. Most validators
	// no-op here.
	ValidateSameTemplateNodes(locs []Located, result *qv.Result) error
}

// Registration binds a validator to a template.
type Registration struct {
	Template  node.TemplateID
	Validator Validator

	// Required makes the absence of any node with this template a finding
	// in its own right, raised by the dispatcher rather than the
	// validator.
	Required bool
}

// RegistrationOption configures a registration.
type RegistrationOption func(*Registration)

// Required marks the registered template as mandatory for every document.
func Required() RegistrationOption {
	return func(r *Registration) {
		r.Required = true
	}
}

// Registry is the explicit template-to-validator mapping. It is built at
// construction time and read-only afterwards.
type Registry struct {
	entries map[node.TemplateID][]*Registration

	// order keeps first-registration order per template so required-template
	// findings are reproducible.
	order []node.TemplateID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[node.TemplateID][]*Registration, 8),
	}
}

// Register adds a validator for a template.
func (r *Registry) Register(template node.TemplateID, v Validator, opts ...RegistrationOption) {
	reg := &Registration{Template: template, Validator: v}
	for _, opt := range opts {
		opt(reg)
	}
	if _, seen := r.entries[template]; !seen {
		r.order = append(r.order, template)
	}
	r.entries[template] = append(r.entries[template], reg)
}

// For returns the registrations for a template.
func (r *Registry) For(template node.TemplateID) []*Registration {
	return r.entries[template]
}

// RequiredTemplates returns every template some registration marks
// required, in registration order.
func (r *Registry) RequiredTemplates() []node.TemplateID {
	var required []node.TemplateID
	for _, template := range r.order {
		for _, reg := range r.entries[template] {
			if reg.Required {
				required = append(required, template)
				break
			}
		}
	}
	return required
}

// Templates returns every registered template in registration order.
func (r *Registry) Templates() []node.TemplateID {
	return r.order
}
