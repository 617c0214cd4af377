package quality

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/measure"
	"github.com/goqpp/validator/node"
	"github.com/goqpp/validator/registry"
)

func aciStore(t *testing.T) *measure.Store {
	t.Helper()
	store, err := measure.NewStore(
		measure.Config{MeasureID: "ACI_EP_1", Category: "aci", Required: true},
		measure.Config{MeasureID: "ACI_PEA_1", Category: "aci", Required: true},
		measure.Config{MeasureID: "ACI_OPTIONAL", Category: "aci"},
		measure.Config{MeasureID: "QUALITY_MEASURE", Category: "quality", Required: true},
	)
	require.NoError(t, err)
	return store
}

func aciMeasure(measureID string) *node.Node {
	return node.New(node.TemplateAciNumeratorDenominator).PutValue(AttrMeasureID, measureID)
}

func runSectionValidator(t *testing.T, section *node.Node) *qv.Result {
	t.Helper()
	v := NewAciSectionValidator(aciStore(t))
	result := qv.NewResult()
	loc := registry.Located{Node: section, Path: "clinicalDocument.aciSection[0]"}
	require.NoError(t, v.ValidateSingleNode(loc, result))
	return result
}

func TestSectionAllRequiredMeasuresPresent(t *testing.T) {
	section := node.New(node.TemplateAciSection)
	section.Append(aciMeasure("ACI_EP_1"), aciMeasure("ACI_PEA_1"))

	result := runSectionValidator(t, section)
	assert.True(t, result.Valid(), "details: %v", result.Details())
}

func TestSectionOptionalMeasureNotDemanded(t *testing.T) {
	// Only measures marked required for the section's category are demanded;
	// optional ones and other categories' measures are ignored.
	section := node.New(node.TemplateAciSection)
	section.Append(aciMeasure("ACI_EP_1"), aciMeasure("ACI_PEA_1"))

	result := runSectionValidator(t, section)
	assert.True(t, result.Valid())
}

func TestSectionMissingRequiredMeasure(t *testing.T) {
	section := node.New(node.TemplateAciSection)
	section.Append(aciMeasure("ACI_EP_1"))

	result := runSectionValidator(t, section)
	details := result.Details()
	require.Len(t, details, 1)
	assert.Equal(t, fmt.Sprintf(NoRequiredMeasure, "ACI_PEA_1", "ACI"), details[0].Message)
	assert.Contains(t, details[0].Message, "Please add the ACI measure and try again.")
	assert.Equal(t, "clinicalDocument.aciSection[0]", details[0].Path)
	assert.Equal(t, "aci-section", details[0].Source)
}

func TestSectionEmpty(t *testing.T) {
	section := node.New(node.TemplateAciSection)

	result := runSectionValidator(t, section)
	details := result.Details()
	require.Len(t, details, 3, "missing-child finding plus one per required measure")
	assert.Equal(t, fmt.Sprintf(MeasureNodeRequired, "aci"), details[0].Message)
}

func TestSectionFindsMeasuresAtAnyDepth(t *testing.T) {
	// Required measures may sit beneath intermediate grouping nodes.
	group := node.New(node.TemplatePlaceholder)
	group.Append(aciMeasure("ACI_PEA_1"))
	section := node.New(node.TemplateAciSection)
	section.Append(aciMeasure("ACI_EP_1"), group)

	result := runSectionValidator(t, section)
	assert.True(t, result.Valid(), "details: %v", result.Details())
}
