package qppvalidator

// Detail represents a single validation finding. Details are immutable
// once produced; validators create them and the invoking dispatcher owns
// the collected list.
type Detail struct {
	// Message is the human-readable description of the finding
	Message string `json:"message"`

	// Path locates the offending node within the document tree
	Path string `json:"path"`

	// Source identifies the validator that produced the finding
	Source string `json:"source,omitempty"`
}

// String returns a human-readable representation of the detail.
func (d Detail) String() string {
	if d.Path == "" {
		return d.Message
	}
	return d.Message + " at " + d.Path
}

// NewDetail creates a detail for the given message and path.
func NewDetail(message, path string) Detail {
	return Detail{Message: message, Path: path}
}

// DetailBuilder provides a fluent API for building details.
type DetailBuilder struct {
	detail Detail
}

// BuildDetail starts a new DetailBuilder with the given message.
func BuildDetail(message string) *DetailBuilder {
	return &DetailBuilder{detail: Detail{Message: message}}
}

// At sets the tree path of the finding.
func (b *DetailBuilder) At(path string) *DetailBuilder {
	b.detail.Path = path
	return b
}

// From sets the originating validator name.
func (b *DetailBuilder) From(source string) *DetailBuilder {
	b.detail.Source = source
	return b
}

// Build returns the constructed detail.
func (b *DetailBuilder) Build() Detail {
	return b.detail
}
