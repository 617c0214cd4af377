// Package qppvalidator validates decoded QRDA-III quality report trees
// against externally supplied measure configuration data.
//
// The validator operates on a Node tree produced by an external decoder.
// Every node carries a template identifier from a closed enumeration; a
// registry maps each template to the validators responsible for it, and a
// dispatcher walks the tree running a per-node pass followed by a
// per-template-group pass. Findings are accumulated as Detail records and
// returned to the caller; an empty result means the document is
// structurally valid.
//
// # Quick Start
//
//	import (
//	    qv "github.com/goqpp/validator"
//	    "github.com/goqpp/validator/engine"
//	    "github.com/goqpp/validator/measure"
//	)
//
//	store, err := measure.LoadStore("measures-data.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	eng := engine.New(store)
//	result, err := eng.Validate(ctx, root)
//	if err != nil {
//	    log.Fatal(err) // invariant violation, not a validation finding
//	}
//	for _, detail := range result.Details() {
//	    fmt.Printf("%s at %s\n", detail.Message, detail.Path)
//	}
//	result.Release()
//
// # Architecture
//
//   - Small composable assertions (package check) instead of validator
//     inheritance; a failed prerequisite short-circuits derivative checks
//   - Explicit template registry built at construction, no reflection
//   - Immutable, constructor-injected measure configuration store
//   - sync.Pool reuse for results and path building
//
// # Functional Options
//
//	eng := engine.New(store,
//	    qv.WithSubPopulationExclusions("DENEX", "DENEXCEP"),
//	    qv.WithMaxErrors(100),
//	    qv.WithParallelGroups(true),
//	)
package qppvalidator
