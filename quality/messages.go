package quality

// Attribute names the decoder places on nodes.
const (
	AttrMeasureID         = "measureId"
	AttrMeasureType       = "type"
	AttrMeasurePopulation = "measurePopulation"
	AttrPerformanceRateID = "performanceRateId"
	AttrAggregateCount    = "aggregateCount"
)

// Finding messages. The wording is part of the downstream contract and
// must stay stable.
const (
	MeasureGUIDMissing = "The measure reference results must have a measure GUID"

	NoChildMeasure = "The measure reference results must have at least one measure"

	SingleMeasureType = "The measure reference results must have a single measure type"

	SingleMeasurePopulation = "The measure reference results must have a single measure population"

	SinglePerformanceRate = "A Performance Rate must contain a single Performance Rate UUID"

	// IncorrectPopulationCriteriaCount is formatted with the electronic
	// measure id, the expected count, the population criteria key and the
	// actual count.
	IncorrectPopulationCriteriaCount = "The eCQM (electronic measure id: %s) requires %d %s(s) but there are %d"

	// IncorrectUUID is formatted with the electronic measure id, the
	// criteria searched and the expected unique identifier.
	IncorrectUUID = "The eCQM (electronic measure id: %s) requires a %s with the correct UUID of %s"

	RequireValidDenominatorCount = "The Denominator count must be less than or equal to Initial Population count " +
		"for an eCQM that is proportion measure"

	// MeasureNodeRequired is formatted with the section name.
	MeasureNodeRequired = "At least one measure is required within the %s section"

	// NoRequiredMeasure is formatted with the missing measure identifier
	// and the section label.
	NoRequiredMeasure = "The required measure '%s' is not present in the source file. " +
		"Please add the %s measure and try again."
)
