// Package engine wires the measure configuration store, the validator
// registry and the dispatcher into a single validation entry point.
package engine

import (
	"context"

	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/measure"
	"github.com/goqpp/validator/node"
	"github.com/goqpp/validator/quality"
	"github.com/goqpp/validator/registry"
)

// Engine validates decoded document trees against an immutable measure
// configuration store. An Engine is safe for concurrent use: validation
// is a pure function of (tree, store) and all per-document state lives in
// the Result.
type Engine struct {
	store      *measure.Store
	registry   *registry.Registry
	dispatcher *registry.Dispatcher
	options    *qv.Options
}

// New creates an engine with the default validator registry: the measure
// reference consistency validator and the ACI section validator. The ACI
// section is mandatory; its absence is a finding in its own right.
func New(store *measure.Store, opts ...qv.Option) *Engine {
	options := qv.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	reg := registry.NewRegistry()
	reg.Register(node.TemplateMeasureReference,
		quality.NewMeasureReferenceValidator(store, options.SubPopulationExclusions))
	reg.Register(node.TemplateAciSection,
		quality.NewAciSectionValidator(store), registry.Required())

	return &Engine{
		store:      store,
		registry:   reg,
		dispatcher: registry.NewDispatcher(reg, options),
		options:    options,
	}
}

// NewWithRegistry creates an engine over a caller-built registry.
func NewWithRegistry(store *measure.Store, reg *registry.Registry, opts ...qv.Option) *Engine {
	options := qv.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Engine{
		store:      store,
		registry:   reg,
		dispatcher: registry.NewDispatcher(reg, options),
		options:    options,
	}
}

// Register adds a validator to the engine's registry. Must be called
// before the first Validate.
func (e *Engine) Register(template node.TemplateID, v registry.Validator, opts ...registry.RegistrationOption) {
	e.registry.Register(template, v, opts...)
}

// Store returns the engine's configuration store.
func (e *Engine) Store() *measure.Store {
	return e.store
}

// Validate runs both validation passes over the tree rooted at root.
//
// The returned result holds the complete list of findings for the
// document; an empty result means the document is structurally valid. A
// non-nil error signals an invariant violation that aborted the pass —
// the document is then neither valid nor described by the (released)
// partial result.
func (e *Engine) Validate(ctx context.Context, root *node.Node) (*qv.Result, error) {
	var result *qv.Result
	if e.options.EnablePooling {
		result = qv.AcquireResult()
	} else {
		result = qv.NewResult()
	}

	if err := e.dispatcher.Run(ctx, root, result); err != nil {
		result.Release()
		return nil, err
	}
	return result, nil
}
