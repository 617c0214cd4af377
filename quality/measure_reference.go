// Package quality contains the validators for quality measure reporting
// structures: the measure reference results consistency validator and the
// section-level required-measure validator.
package quality

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/check"
	"github.com/goqpp/validator/measure"
	"github.com/goqpp/validator/node"
	"github.com/goqpp/validator/pkg/logger"
	"github.com/goqpp/validator/pool"
	"github.com/goqpp/validator/registry"
)

// MeasureReferenceValidator cross-checks a measure reference results node
// against its measure configuration: every declared population criteria
// type must be represented the correct number of times, and the unique
// identifiers (including performance rate references for proportion
// measures) must resolve to actual children.
//
// Keys in the exclusion set are skipped by the aggregate child-count
// check only; per-sub-population identifier matching still covers them.
// The asymmetry is deliberate: exclusions relax cardinality bookkeeping,
// not identity verification of children that are present.
type MeasureReferenceValidator struct {
	store      *measure.Store
	exclusions map[string]struct{}
	log        *logger.Logger
}

// NewMeasureReferenceValidator creates the validator over an immutable
// configuration store. The exclusion set may be nil.
func NewMeasureReferenceValidator(store *measure.Store, exclusions map[string]struct{}) *MeasureReferenceValidator {
	if exclusions == nil {
		exclusions = map[string]struct{}{}
	}
	return &MeasureReferenceValidator{
		store:      store,
		exclusions: exclusions,
		log:        logger.Default(),
	}
}

// Name implements registry.Validator.
func (v *MeasureReferenceValidator) Name() string {
	return "measure-reference"
}

// ValidateSingleNode checks one measure reference results node: it must
// carry a measure GUID, have at least one measure datum child, and agree
// with its configuration's sub-populations.
func (v *MeasureReferenceValidator) ValidateSingleNode(loc registry.Located, result *qv.Result) error {
	check.Thoroughly(loc.Node, loc.Path, result).From(v.Name()).
		SingleValue(MeasureGUIDMissing, AttrMeasureID).
		ChildMinimum(NoChildMeasure, 1, node.TemplateMeasureData)

	return v.validateMeasureConfig(loc, result)
}

// ValidateSameTemplateNodes implements registry.Validator; measure
// references carry no cross-node constraints.
func (v *MeasureReferenceValidator) ValidateSameTemplateNodes(locs []registry.Located, result *qv.Result) error {
	return nil
}

// validateMeasureConfig resolves the node's configuration. A measure the
// store does not know may legitimately appear in a submission, so an
// unresolvable identifier is only a finding when the identifier itself is
// present (its absence is already reported by the GUID check).
func (v *MeasureReferenceValidator) validateMeasureConfig(loc registry.Located, result *qv.Result) error {
	id, present := loc.Node.Value(AttrMeasureID)

	cfg, found := v.store.Lookup(id)
	if found {
		return v.validateAllSubPopulations(loc, cfg, result)
	}

	if present {
		v.log.Error("no measure configuration for measureId %s", id)
		result.AddDetail(qv.Detail{Message: MeasureGUIDMissing, Path: loc.Path, Source: v.Name()})
	}
	return nil
}

// validateAllSubPopulations runs the aggregate child-count check for every
// non-excluded population criteria key, then matches each sub-population's
// declared identifiers against the actual children.
func (v *MeasureReferenceValidator) validateAllSubPopulations(loc registry.Located, cfg *measure.Config, result *qv.Result) error {
	subs := cfg.SubPopulations
	if len(subs) == 0 {
		return nil
	}

	for _, key := range measure.ExclusiveKeys(v.exclusions) {
		if err := v.validateChildTypeCount(loc, subs, key, result); err != nil {
			return err
		}
	}

	for _, sub := range subs {
		if err := v.validateSubPopulation(loc, cfg, sub, result); err != nil {
			return err
		}
	}
	return nil
}

// validateChildTypeCount compares how many sub-populations declare an
// identifier for key against how many measure datum children actually
// carry that population criteria type.
func (v *MeasureReferenceValidator) validateChildTypeCount(loc registry.Located, subs []measure.SubPopulation, key string, result *qv.Result) error {
	expected := 0
	for _, sub := range subs {
		if sub.UniqueIDForKey(key) != "" {
			expected++
		}
	}

	actual := 0
	idx := 0
	for child := range loc.Node.ChildNodes(node.TemplateMeasureData) {
		if v.matchesType(child, v.childPath(loc, node.TemplateMeasureData, idx), key, result) {
			actual++
		}
		idx++
	}

	if expected == actual {
		return nil
	}

	cfg, err := v.configForMessage(loc)
	if err != nil {
		return err
	}
	result.AddDetail(qv.Detail{
		Message: fmt.Sprintf(IncorrectPopulationCriteriaCount, cfg.ElectronicMeasureID, expected, key, actual),
		Path:    loc.Path,
		Source:  v.Name(),
	})
	return nil
}

// validateSubPopulation matches every declared identifier of one
// sub-population against the children. An absent identifier means the key
// is not required here and is silently skipped. The exclusion set is
// intentionally not consulted in this step.
func (v *MeasureReferenceValidator) validateSubPopulation(loc registry.Located, cfg *measure.Config, sub measure.SubPopulation, result *qv.Result) error {
	for _, key := range measure.Keys {
		uid := sub.UniqueIDForKey(key)
		if uid == "" {
			continue
		}

		matched := v.findMatchingChild(loc, key, uid, result)
		if matched == nil {
			cfgMsg, err := v.configForMessage(loc)
			if err != nil {
				return err
			}
			result.AddDetail(qv.Detail{
				Message: fmt.Sprintf(IncorrectUUID, cfgMsg.ElectronicMeasureID, strings.Join(measure.Aliases(key), ","), uid),
				Path:    loc.Path,
				Source:  v.Name(),
			})
			continue
		}

		if err := v.followUp(loc, cfg, sub, key, matched, result); err != nil {
			return err
		}
	}
	return nil
}

// findMatchingChild locates a measure datum child whose population
// criteria type matches key and whose population identifier equals uid.
// Children failing the single-valuedness guards are flagged and excluded
// from matching.
func (v *MeasureReferenceValidator) findMatchingChild(loc registry.Located, key, uid string, result *qv.Result) *node.Node {
	idx := 0
	for child := range loc.Node.ChildNodes(node.TemplateMeasureData) {
		childPath := v.childPath(loc, node.TemplateMeasureData, idx)
		idx++

		if !v.matchesType(child, childPath, key, result) {
			continue
		}
		if !v.matchesUniqueID(child, childPath, SingleMeasurePopulation, AttrMeasurePopulation, uid, result) {
			continue
		}
		return child
	}
	return nil
}

// followUp runs the proportion-measure checks on a matched child: the
// numerator's performance rate reference and the denominator count bound.
func (v *MeasureReferenceValidator) followUp(loc registry.Located, cfg *measure.Config, sub measure.SubPopulation, key string, matched *node.Node, result *qv.Result) error {
	if !cfg.IsProportion() {
		return nil
	}

	switch key {
	case measure.KeyNumerator:
		return v.validatePerformanceRate(loc, sub.NumeratorUUID, result)
	case measure.KeyDenominator:
		v.validateDenominatorBound(loc, matched, result)
	}
	return nil
}

// validatePerformanceRate resolves into the performance rate children and
// repeats the single-value + configured-identifier check against the
// performance rate identifier attribute.
func (v *MeasureReferenceValidator) validatePerformanceRate(loc registry.Located, uid string, result *qv.Result) error {
	if uid == "" {
		return nil
	}

	idx := 0
	for child := range loc.Node.ChildNodes(node.TemplatePerformanceRate) {
		childPath := v.childPath(loc, node.TemplatePerformanceRate, idx)
		idx++

		if v.matchesUniqueID(child, childPath, SinglePerformanceRate, AttrPerformanceRateID, uid, result) {
			return nil
		}
	}

	cfg, err := v.configForMessage(loc)
	if err != nil {
		return err
	}
	result.AddDetail(qv.Detail{
		Message: fmt.Sprintf(IncorrectUUID, cfg.ElectronicMeasureID, AttrPerformanceRateID, uid),
		Path:    loc.Path,
		Source:  v.Name(),
	})
	return nil
}

// validateDenominatorBound checks that the denominator aggregate count
// does not exceed the initial population aggregate count.
func (v *MeasureReferenceValidator) validateDenominatorBound(loc registry.Located, denom *node.Node, result *qv.Result) {
	denomCount, ok := aggregateCount(denom)
	if !ok {
		return
	}

	for ipop := range loc.Node.ChildNodes(node.TemplateMeasureData) {
		value, _ := ipop.Value(AttrMeasureType)
		if !slices.Contains(measure.Aliases(measure.KeyInitialPopulation), value) {
			continue
		}
		ipopCount, ok := aggregateCount(ipop)
		if !ok {
			return
		}
		if denomCount > ipopCount {
			result.AddDetail(qv.Detail{Message: RequireValidDenominatorCount, Path: loc.Path, Source: v.Name()})
		}
		return
	}
}

// matchesType reports whether the child carries the population criteria
// type for key. A child without exactly one type value is flagged and
// never a match candidate.
func (v *MeasureReferenceValidator) matchesType(child *node.Node, childPath, key string, result *qv.Result) bool {
	c := check.Thoroughly(child, childPath, result).From(v.Name()).
		IncompleteValidation().
		SingleValue(SingleMeasureType, AttrMeasureType)
	if c.Failed() {
		return false
	}
	value, _ := child.Value(AttrMeasureType)
	return slices.Contains(measure.Aliases(key), value)
}

// matchesUniqueID reports whether the child carries exactly one value for
// the identifier attribute and that value equals uid.
func (v *MeasureReferenceValidator) matchesUniqueID(child *node.Node, childPath, message, name, uid string, result *qv.Result) bool {
	c := check.Thoroughly(child, childPath, result).From(v.Name()).
		IncompleteValidation().
		SingleValue(message, name)
	if c.Failed() {
		return false
	}
	value, _ := child.Value(name)
	return value == uid
}

// configForMessage re-resolves the configuration while formatting a
// finding. Reaching this point without a resolvable configuration means
// the resolution invariant was violated upstream, which aborts the pass
// for this document.
func (v *MeasureReferenceValidator) configForMessage(loc registry.Located) (*measure.Config, error) {
	id, _ := loc.Node.Value(AttrMeasureID)
	cfg, ok := v.store.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: measure configuration for %q vanished during validation", qv.ErrInvariant, id)
	}
	return cfg, nil
}

func (v *MeasureReferenceValidator) childPath(loc registry.Located, template node.TemplateID, idx int) string {
	return loc.Path + "." + pool.Segment(template.Name(), idx)
}

// aggregateCount reads the aggregate count value beneath a measure datum
// node. Missing or non-numeric counts are the decoder's concern and make
// the bound check inapplicable rather than a finding.
func aggregateCount(n *node.Node) (int, bool) {
	agg := n.FindFirst(node.TemplateAggregateCount)
	if agg == nil {
		return 0, false
	}
	raw, ok := agg.Value(AttrAggregateCount)
	if !ok {
		return 0, false
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return count, true
}
