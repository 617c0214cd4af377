package qppvalidator

import (
	"sync"
)

// Result contains the outcome of validating a single document tree.
// Use Release() to return it to the pool when done.
type Result struct {
	// details holds all findings in accumulation order
	details []Detail

	// DocumentID correlates results during batch validation
	DocumentID string `json:"documentId,omitempty"`

	// mu protects concurrent access to details during parallel group passes
	mu sync.Mutex
}

// resultPool holds reusable Result instances.
var resultPool = sync.Pool{
	New: func() any {
		return &Result{
			details: make([]Detail, 0, 16),
		}
	},
}

// AcquireResult gets an empty Result from the pool.
func AcquireResult() *Result {
	r := resultPool.Get().(*Result)
	r.Reset()
	return r
}

// NewResult creates a new (non-pooled) result.
// Prefer AcquireResult() for better performance.
func NewResult() *Result {
	return &Result{details: make([]Detail, 0, 8)}
}

// Release returns the Result to the pool.
// After calling Release, the Result should not be used.
func (r *Result) Release() {
	if r == nil {
		return
	}
	// Don't return results with oversized detail slices
	if cap(r.details) <= 1024 {
		resultPool.Put(r)
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.details = r.details[:0]
	r.DocumentID = ""
}

// AddDetail appends a finding to the result.
// This method is thread-safe.
func (r *Result) AddDetail(detail Detail) {
	r.mu.Lock()
	r.details = append(r.details, detail)
	r.mu.Unlock()
}

// AddDetails appends multiple findings to the result.
// This method is thread-safe.
func (r *Result) AddDetails(details []Detail) {
	if len(details) == 0 {
		return
	}
	r.mu.Lock()
	r.details = append(r.details, details...)
	r.mu.Unlock()
}

// Details returns a copy of the accumulated findings.
func (r *Result) Details() []Detail {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Detail, len(r.details))
	copy(out, r.details)
	return out
}

// Count returns the number of accumulated findings.
func (r *Result) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.details)
}

// Valid reports whether the document produced no findings.
func (r *Result) Valid() bool {
	return r.Count() == 0
}

// Merge combines another result into this one.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.AddDetails(other.Details())
}

// Clone creates a copy of the result (not pooled).
func (r *Result) Clone() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := &Result{
		details:    make([]Detail, len(r.details)),
		DocumentID: r.DocumentID,
	}
	copy(clone.details, r.details)
	return clone
}
