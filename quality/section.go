package quality

import (
	"fmt"
	"strings"

	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/check"
	"github.com/goqpp/validator/measure"
	"github.com/goqpp/validator/node"
	"github.com/goqpp/validator/registry"
)

// SectionValidator checks a reporting section: at least one measure node
// must be present, and every measure the configuration store marks
// required for the section's category must be represented somewhere
// beneath the section.
type SectionValidator struct {
	store         *measure.Store
	category      string
	sectionName   string
	childTemplate node.TemplateID
}

// NewSectionValidator creates a section validator for one reporting
// category. childTemplate is the template of the measure nodes the
// section must contain.
func NewSectionValidator(store *measure.Store, category, sectionName string, childTemplate node.TemplateID) *SectionValidator {
	return &SectionValidator{
		store:         store,
		category:      category,
		sectionName:   sectionName,
		childTemplate: childTemplate,
	}
}

// NewAciSectionValidator creates the validator for the ACI section.
func NewAciSectionValidator(store *measure.Store) *SectionValidator {
	return NewSectionValidator(store, "aci", "aci", node.TemplateAciNumeratorDenominator)
}

// Name implements registry.Validator.
func (v *SectionValidator) Name() string {
	return v.sectionName + "-section"
}

// ValidateSingleNode checks one section node.
func (v *SectionValidator) ValidateSingleNode(loc registry.Located, result *qv.Result) error {
	c := check.Thoroughly(loc.Node, loc.Path, result).From(v.Name()).
		ChildMinimum(fmt.Sprintf(MeasureNodeRequired, v.sectionName), 1, v.childTemplate)

	for _, cfg := range v.store.All() {
		if cfg.Category != v.category || !cfg.Required {
			continue
		}
		c.HasMeasures(fmt.Sprintf(NoRequiredMeasure, cfg.MeasureID, v.sectionLabel()), cfg.MeasureID)
	}
	return nil
}

// sectionLabel is the section's display form in finding messages.
func (v *SectionValidator) sectionLabel() string {
	return strings.ToUpper(v.sectionName)
}

// ValidateSameTemplateNodes implements registry.Validator; sections carry
// no cross-node constraints.
func (v *SectionValidator) ValidateSameTemplateNodes(locs []registry.Located, result *qv.Result) error {
	return nil
}
