package registry

import (
	"context"
	"fmt"
	"sync"

	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/node"
	"github.com/goqpp/validator/pool"
)

// MissingRequiredTemplate is the finding raised when a document contains
// no node for a template a registration marks required.
const MissingRequiredTemplate = "The submission is missing a required %s element"

// Dispatcher walks a decoded tree and runs the registered validators in
// two passes: every node in isolation, then every distinct template's
// nodes as a group.
type Dispatcher struct {
	registry *Registry
	options  *qv.Options
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, options *qv.Options) *Dispatcher {
	if options == nil {
		options = qv.DefaultOptions()
	}
	return &Dispatcher{registry: registry, options: options}
}

// Run validates the tree rooted at root, accumulating findings into
// result. It returns an error only for invariant violations; the result
// is then incomplete and must be discarded.
func (d *Dispatcher) Run(ctx context.Context, root *node.Node, result *qv.Result) error {
	if root == nil {
		return fmt.Errorf("%w: nil document root", qv.ErrInvariant)
	}

	groups, groupOrder := d.collect(root)

	// Pass 1: each node in document order against its template's validators.
	for _, template := range groupOrder {
		for _, loc := range groups[template] {
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.reachedMaxErrors(result) {
				return nil
			}
			for _, reg := range d.registry.For(template) {
				if err := reg.Validator.ValidateSingleNode(loc, result); err != nil {
					return err
				}
			}
		}
	}

	// Dispatcher-owned check: required templates must be represented.
	for _, template := range d.registry.RequiredTemplates() {
		if len(groups[template]) == 0 {
			result.AddDetail(qv.Detail{
				Message: fmt.Sprintf(MissingRequiredTemplate, template.Name()),
				Path:    root.Template().Name(),
			})
		}
	}

	if d.reachedMaxErrors(result) {
		return nil
	}

	// Pass 2: each distinct template's nodes as one group.
	if d.options.ParallelGroups {
		return d.runGroupsParallel(ctx, groups, groupOrder, result)
	}
	return d.runGroupsSequential(ctx, groups, groupOrder, result)
}

func (d *Dispatcher) runGroupsSequential(ctx context.Context, groups map[node.TemplateID][]Located, order []node.TemplateID, result *qv.Result) error {
	for _, template := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.reachedMaxErrors(result) {
			return nil
		}
		for _, reg := range d.registry.For(template) {
			if err := reg.Validator.ValidateSameTemplateNodes(groups[template], result); err != nil {
				return err
			}
		}
	}
	return nil
}

// runGroupsParallel runs each template group in its own goroutine. The
// groups are independent in data dependency, so only the merge order of
// their output varies.
func (d *Dispatcher) runGroupsParallel(ctx context.Context, groups map[node.TemplateID][]Located, order []node.TemplateID, result *qv.Result) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, template := range order {
		regs := d.registry.For(template)
		if len(regs) == 0 {
			continue
		}
		wg.Add(1)
		go func(template node.TemplateID) {
			defer wg.Done()
			for _, reg := range regs {
				if ctx.Err() != nil {
					return
				}
				if err := reg.Validator.ValidateSameTemplateNodes(groups[template], result); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
			}
		}(template)
	}

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// collect walks the tree once, deriving each node's path and bucketing
// nodes by template in document order. Group order follows first
// encounter so reruns over the same tree are reproducible.
func (d *Dispatcher) collect(root *node.Node) (map[node.TemplateID][]Located, []node.TemplateID) {
	groups := make(map[node.TemplateID][]Located, 8)
	var order []node.TemplateID

	pb := pool.AcquirePathBuilder()
	defer pb.Release()

	var walk func(n *node.Node)
	add := func(n *node.Node) {
		if _, seen := groups[n.Template()]; !seen {
			order = append(order, n.Template())
		}
		groups[n.Template()] = append(groups[n.Template()], Located{Node: n, Path: pb.String()})
	}

	walk = func(n *node.Node) {
		add(n)
		indexes := make(map[node.TemplateID]int, 4)
		for _, child := range n.Children() {
			idx := indexes[child.Template()]
			indexes[child.Template()] = idx + 1

			pb.Push(child.Template().Name(), idx)
			walk(child)
			pb.Pop()
		}
	}

	pb.Push(root.Template().Name(), -1)
	walk(root)

	return groups, order
}

func (d *Dispatcher) reachedMaxErrors(result *qv.Result) bool {
	return d.options.MaxErrors > 0 && result.Count() >= d.options.MaxErrors
}
