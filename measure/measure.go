// Package measure holds the externally supplied measure configuration
// data: which population criteria a measure declares and the unique
// identifiers its decoded children must carry. The data is loaded once and
// is immutable, shared, read-only state for every validator.
package measure

// Population criteria keys. IPP and IPOP are interchangeable spellings of
// the initial population; everywhere else a single canonical key is used.
const (
	KeyInitialPopulation    = "IPOP"
	KeyInitialPopulationAlt = "IPP"
	KeyDenominator          = "DENOM"
	KeyDenominatorExclusion = "DENEX"
	KeyDenominatorException = "DENEXCEP"
	KeyNumerator            = "NUMER"
)

// Keys lists the canonical population criteria keys in the order checks
// iterate them. Duplicate-count findings must be reproducible for
// identical input, so this order is fixed.
var Keys = []string{
	KeyInitialPopulation,
	KeyDenominator,
	KeyDenominatorExclusion,
	KeyDenominatorException,
	KeyNumerator,
}

// Aliases returns every accepted spelling for a canonical key.
func Aliases(key string) []string {
	if key == KeyInitialPopulation {
		return []string{KeyInitialPopulationAlt, KeyInitialPopulation}
	}
	return []string{key}
}

// ExclusiveKeys returns the canonical keys not present in the given
// exclusion set, preserving the canonical order.
func ExclusiveKeys(exclusions map[string]struct{}) []string {
	keys := make([]string, 0, len(Keys))
	for _, key := range Keys {
		if _, excluded := exclusions[key]; excluded {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// SubPopulation maps population criteria keys to the unique identifier a
// corresponding child node must carry. An empty identifier means the key
// is not required for this sub-population.
type SubPopulation struct {
	InitialPopulationUUID     string `yaml:"initialPopulationUuid" json:"initialPopulationUuid"`
	DenominatorUUID           string `yaml:"denominatorUuid" json:"denominatorUuid"`
	DenominatorExclusionsUUID string `yaml:"denominatorExclusionsUuid" json:"denominatorExclusionsUuid"`
	DenominatorExceptionsUUID string `yaml:"denominatorExceptionsUuid" json:"denominatorExceptionsUuid"`
	NumeratorUUID             string `yaml:"numeratorUuid" json:"numeratorUuid"`
}

// UniqueIDForKey returns the configured identifier for a canonical key, or
// "" when the key is not required for this sub-population.
func (s SubPopulation) UniqueIDForKey(key string) string {
	switch key {
	case KeyInitialPopulation, KeyInitialPopulationAlt:
		return s.InitialPopulationUUID
	case KeyDenominator:
		return s.DenominatorUUID
	case KeyDenominatorExclusion:
		return s.DenominatorExclusionsUUID
	case KeyDenominatorException:
		return s.DenominatorExceptionsUUID
	case KeyNumerator:
		return s.NumeratorUUID
	default:
		return ""
	}
}

// Config describes the required structural shape of one measure.
type Config struct {
	MeasureID           string          `yaml:"measureId" json:"measureId"`
	Category            string          `yaml:"category" json:"category"`
	Required            bool            `yaml:"isRequired" json:"isRequired"`
	MetricType          string          `yaml:"metricType" json:"metricType"`
	ElectronicMeasureID string          `yaml:"eMeasureId" json:"eMeasureId"`
	SubPopulations      []SubPopulation `yaml:"strata" json:"strata"`
}

// IsProportion reports whether the measure is a proportion measure, which
// gates the performance rate and denominator bound follow-up checks.
func (c *Config) IsProportion() bool {
	return c.MetricType == "proportion"
}
