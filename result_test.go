package qppvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultAccumulation(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Valid())
	assert.Equal(t, 0, r.Count())

	r.AddDetail(Detail{Message: "first", Path: "a"})
	r.AddDetails([]Detail{
		{Message: "second", Path: "b"},
		{Message: "third", Path: "c"},
	})

	require.Equal(t, 3, r.Count())
	assert.False(t, r.Valid())

	details := r.Details()
	assert.Equal(t, "first", details[0].Message)
	assert.Equal(t, "third", details[2].Message)

	// Details returns a copy
	details[0].Message = "mutated"
	assert.Equal(t, "first", r.Details()[0].Message)
}

func TestResultPooling(t *testing.T) {
	r := AcquireResult()
	r.AddDetail(Detail{Message: "finding", Path: "x"})
	r.DocumentID = "doc-1"
	r.Release()

	reused := AcquireResult()
	defer reused.Release()
	assert.True(t, reused.Valid())
	assert.Empty(t, reused.DocumentID)
}

func TestResultMergeAndClone(t *testing.T) {
	a := NewResult()
	a.AddDetail(Detail{Message: "a", Path: "p"})

	b := NewResult()
	b.AddDetail(Detail{Message: "b", Path: "q"})

	a.Merge(b)
	require.Equal(t, 2, a.Count())

	clone := a.Clone()
	a.AddDetail(Detail{Message: "later", Path: "r"})
	assert.Equal(t, 2, clone.Count())
	assert.Equal(t, 3, a.Count())

	a.Merge(nil)
	assert.Equal(t, 3, a.Count())
}

func TestDetailBuilder(t *testing.T) {
	d := BuildDetail("something is missing").
		At("clinicalDocument.measureSection[0]").
		From("measure-reference").
		Build()

	assert.Equal(t, "something is missing", d.Message)
	assert.Equal(t, "clinicalDocument.measureSection[0]", d.Path)
	assert.Equal(t, "measure-reference", d.Source)
	assert.Equal(t, "something is missing at clinicalDocument.measureSection[0]", d.String())
}

func TestOptionsDefaultsAndFunctional(t *testing.T) {
	o := DefaultOptions()
	assert.Empty(t, o.SubPopulationExclusions)
	assert.Zero(t, o.MaxErrors)
	assert.True(t, o.EnablePooling)

	WithSubPopulationExclusions("DENEX", "DENEXCEP")(o)
	WithMaxErrors(5)(o)
	WithWorkerCount(-1)(o)
	WithParallelGroups(true)(o)

	assert.True(t, o.Excluded("DENEX"))
	assert.True(t, o.Excluded("DENEXCEP"))
	assert.False(t, o.Excluded("NUMER"))
	assert.Equal(t, 5, o.MaxErrors)
	assert.True(t, o.ParallelGroups)
	assert.Positive(t, o.WorkerCount, "invalid worker counts keep the default")
}
