package model

// Document is the full text of one HTML snapshot.
// Substitution passes replace Content wholesale; it is written exactly once.
type Document struct {
	// Path is where the document was read from.
	Path string

	// Content is the current text, mutated in place by substitution passes.
	Content string
}

// NewDocument returns a Document holding content read from path.
func NewDocument(path, content string) *Document {
	return &Document{Path: path, Content: content}
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.Content)
}
