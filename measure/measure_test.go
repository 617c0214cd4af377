package measure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysAndAliases(t *testing.T) {
	assert.Equal(t, []string{"IPOP", "DENOM", "DENEX", "DENEXCEP", "NUMER"}, Keys)

	assert.Equal(t, []string{"IPP", "IPOP"}, Aliases(KeyInitialPopulation))
	assert.Equal(t, []string{"DENEX"}, Aliases(KeyDenominatorExclusion))
}

func TestExclusiveKeys(t *testing.T) {
	all := ExclusiveKeys(nil)
	assert.Equal(t, Keys, all)

	some := ExclusiveKeys(map[string]struct{}{
		KeyDenominatorExclusion: {},
		KeyDenominatorException: {},
	})
	assert.Equal(t, []string{"IPOP", "DENOM", "NUMER"}, some)
}

func TestSubPopulationUniqueIDForKey(t *testing.T) {
	sub := SubPopulation{
		InitialPopulationUUID:     "ipop-uuid",
		DenominatorUUID:           "denom-uuid",
		DenominatorExclusionsUUID: "denex-uuid",
		NumeratorUUID:             "numer-uuid",
	}

	assert.Equal(t, "ipop-uuid", sub.UniqueIDForKey(KeyInitialPopulation))
	assert.Equal(t, "ipop-uuid", sub.UniqueIDForKey(KeyInitialPopulationAlt))
	assert.Equal(t, "denom-uuid", sub.UniqueIDForKey(KeyDenominator))
	assert.Equal(t, "denex-uuid", sub.UniqueIDForKey(KeyDenominatorExclusion))
	assert.Empty(t, sub.UniqueIDForKey(KeyDenominatorException))
	assert.Empty(t, sub.UniqueIDForKey("BOGUS"))
}

func TestStoreLookupAndOrder(t *testing.T) {
	store, err := NewStore(
		Config{MeasureID: "b", ElectronicMeasureID: "CMS2v1"},
		Config{MeasureID: "a", ElectronicMeasureID: "CMS1v1"},
	)
	require.NoError(t, err)

	cfg, ok := store.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "CMS1v1", cfg.ElectronicMeasureID)

	_, ok = store.Lookup("missing")
	assert.False(t, ok)

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].MeasureID, "declared order preserved")
	assert.Equal(t, 2, store.Len())
}

func TestStoreRejectsBadConfigs(t *testing.T) {
	_, err := NewStore(Config{MeasureID: "dup"}, Config{MeasureID: "dup"})
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewStore(Config{})
	assert.ErrorContains(t, err, "no measureId")
}

func TestReadStoreJSON(t *testing.T) {
	data := `[
		{
			"measureId": "40280381-51f0-825b-0152-22b98cff181a",
			"category": "quality",
			"metricType": "proportion",
			"eMeasureId": "CMS165v5",
			"strata": [
				{
					"initialPopulationUuid": "E681DBF8-F827-4586-B3E0-178FF19EC3A2",
					"denominatorUuid": "04BF53CE-6993-4EA2-BFE5-66E36172B388",
					"denominatorExclusionsUuid": "55A6D5F3-2029-4896-B850-4C7894161D7D",
					"numeratorUuid": "F9FEBF42-4B21-47A9-B03E-D2DA5CF8492B"
				}
			]
		},
		{
			"measureId": "requiresNothingGuid",
			"category": "aci",
			"isRequired": true,
			"eMeasureId": "CMS000v0"
		}
	]`

	store, err := ReadStore(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	cfg, ok := store.Lookup("40280381-51f0-825b-0152-22b98cff181a")
	require.True(t, ok)
	assert.True(t, cfg.IsProportion())
	require.Len(t, cfg.SubPopulations, 1)
	assert.Equal(t, "55A6D5F3-2029-4896-B850-4C7894161D7D",
		cfg.SubPopulations[0].UniqueIDForKey(KeyDenominatorExclusion))

	aci, ok := store.Lookup("requiresNothingGuid")
	require.True(t, ok)
	assert.True(t, aci.Required)
	assert.False(t, aci.IsProportion())
}

func TestReadStoreYAML(t *testing.T) {
	data := `
- measureId: measure-one
  category: quality
  metricType: nonProportion
  eMeasureId: CMS1v1
  strata:
    - denominatorExceptionsUuid: denexcep-uuid
`
	store, err := ReadStore(strings.NewReader(data))
	require.NoError(t, err)

	cfg, ok := store.Lookup("measure-one")
	require.True(t, ok)
	require.Len(t, cfg.SubPopulations, 1)
	assert.Equal(t, "denexcep-uuid", cfg.SubPopulations[0].UniqueIDForKey(KeyDenominatorException))
}

func TestReadStoreRejectsGarbage(t *testing.T) {
	_, err := ReadStore(strings.NewReader("{not valid"))
	assert.Error(t, err)
}
