package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/node"
)

// fakeValidator flags documents whose root carries a "flag" attribute.
type fakeValidator struct{}

func (fakeValidator) Validate(ctx context.Context, root *node.Node) (*qv.Result, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil document root", qv.ErrInvariant)
	}
	result := qv.NewResult()
	if _, flagged := root.Value("flag"); flagged {
		result.AddDetail(qv.Detail{Message: "flagged document", Path: "clinicalDocument"})
	}
	return result, nil
}

func TestPoolProcessesAllJobs(t *testing.T) {
	p := NewPool(fakeValidator{}, 4)

	const jobs = 20
	go func() {
		for i := 0; i < jobs; i++ {
			root := node.New(node.TemplateClinicalDocument)
			if i%2 == 0 {
				root.PutValue("flag", "true")
			}
			ok := p.Submit(Job{ID: fmt.Sprintf("doc-%02d", i), Root: root})
			assert.True(t, ok)
		}
		p.Close()
	}()

	flagged, clean := 0, 0
	seen := make(map[string]bool, jobs)
	for jr := range p.Results() {
		require.NoError(t, jr.Error)
		require.NotNil(t, jr.Result)
		assert.Equal(t, jr.ID, jr.Result.DocumentID)
		assert.False(t, seen[jr.ID], "duplicate result for %s", jr.ID)
		seen[jr.ID] = true

		if jr.Result.Valid() {
			clean++
		} else {
			flagged++
		}
		assert.GreaterOrEqual(t, jr.Duration, time.Duration(0))
	}

	assert.Equal(t, jobs, flagged+clean)
	assert.Equal(t, 10, flagged)

	submitted, completed := p.Stats()
	assert.Equal(t, uint64(jobs), submitted)
	assert.Equal(t, uint64(jobs), completed)
}

func TestPoolReportsJobErrors(t *testing.T) {
	p := NewPool(fakeValidator{}, 1)

	require.True(t, p.Submit(Job{ID: "broken"}))
	p.Close()

	jr := <-p.Results()
	require.NotNil(t, jr)
	assert.Equal(t, "broken", jr.ID)
	assert.ErrorIs(t, jr.Error, qv.ErrInvariant)
	assert.Nil(t, jr.Result)

	_, open := <-p.Results()
	assert.False(t, open, "results channel closes after draining")
}

func TestPoolSubmitAfterClose(t *testing.T) {
	p := NewPool(fakeValidator{}, 1)
	p.Close()

	ok := p.Submit(Job{ID: "late", Root: node.New(node.TemplateClinicalDocument)})
	assert.False(t, ok)

	for range p.Results() {
		t.Fatal("no results expected")
	}
}

func TestPoolDefaultWorkerCount(t *testing.T) {
	p := NewPool(fakeValidator{}, 0)
	assert.Greater(t, p.workers, 0)

	require.True(t, p.Submit(Job{ID: "one", Root: node.New(node.TemplateClinicalDocument)}))
	p.Close()

	jr := <-p.Results()
	require.NotNil(t, jr)
	assert.Equal(t, "one", jr.ID)
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	p := NewPool(fakeValidator{}, 1)
	p.Close()
	p.Close()

	for range p.Results() {
	}
}
