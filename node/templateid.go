package node

// TemplateID identifies the semantic kind of a decoded node. The set is
// closed: decoders only produce nodes tagged with one of the constants
// below, and a node's template never changes after construction.
type TemplateID string

// Template identifiers for the structural units a decoded submission may
// contain. The values are the CDA template OIDs the decoder matched on.
const (
	TemplateClinicalDocument        TemplateID = "2.16.840.1.113883.10.20.27.1.2"
	TemplateReportingParameters     TemplateID = "2.16.840.1.113883.10.20.27.3.23"
	TemplateMeasureSection          TemplateID = "2.16.840.1.113883.10.20.24.2.2"
	TemplateQualitySection          TemplateID = "2.16.840.1.113883.10.20.27.2.3"
	TemplateAciSection              TemplateID = "2.16.840.1.113883.10.20.27.2.5"
	TemplateAciNumeratorDenominator TemplateID = "2.16.840.1.113883.10.20.27.3.28"
	TemplateMeasureReference        TemplateID = "2.16.840.1.113883.10.20.27.3.17"
	TemplateMeasureData             TemplateID = "2.16.840.1.113883.10.20.27.3.16"
	TemplateAggregateCount          TemplateID = "2.16.840.1.113883.10.20.27.3.3"
	TemplatePerformanceRate         TemplateID = "2.16.840.1.113883.10.20.27.3.30"
	TemplatePlaceholder             TemplateID = "placeholder"
)

// templateNames maps template identifiers to the short names used in
// derived tree paths and log output.
var templateNames = map[TemplateID]string{
	TemplateClinicalDocument:        "clinicalDocument",
	TemplateReportingParameters:     "reportingParameters",
	TemplateMeasureSection:          "measureSection",
	TemplateQualitySection:          "qualitySection",
	TemplateAciSection:              "aciSection",
	TemplateAciNumeratorDenominator: "aciNumeratorDenominator",
	TemplateMeasureReference:        "measureReferenceResults",
	TemplateMeasureData:             "measureData",
	TemplateAggregateCount:          "aggregateCount",
	TemplatePerformanceRate:         "performanceRate",
	TemplatePlaceholder:             "placeholder",
}

// Name returns the short path name for the template, or the raw identifier
// for templates outside the known set.
func (t TemplateID) Name() string {
	if name, ok := templateNames[t]; ok {
		return name
	}
	return string(t)
}

// Known reports whether the template is part of the closed enumeration.
func (t TemplateID) Known() bool {
	_, ok := templateNames[t]
	return ok
}
