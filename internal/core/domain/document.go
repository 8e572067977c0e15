package domain

// DocumentType identifies which knowledge file a document came from.
type DocumentType string

// Available document types.
const (
	// DocumentTypeSoil is a soil profile record.
	DocumentTypeSoil DocumentType = "soil"

	// DocumentTypeCrop is a crop profile record.
	DocumentTypeCrop DocumentType = "crop"

	// DocumentTypeScheme is a government scheme record.
	DocumentTypeScheme DocumentType = "scheme"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeSoil, DocumentTypeCrop, DocumentTypeScheme:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Document is a normalised text record derived from the static knowledge
// base. Documents are built once at index time and never mutated; a corpus
// reload replaces the whole set. Identity is (Type, Category).
type Document struct {
	// Content is the flattened human-readable text used for retrieval.
	// Field order within the content is fixed so that embeddings are
	// reproducible across rebuilds.
	Content string

	// Type is the knowledge category this document came from.
	Type DocumentType

	// Category is the record key within its type (e.g. "alluvial", "rice").
	Category string

	// Source is the original structured record the content was built from.
	Source map[string]any
}

// Ref returns the human-readable source reference for this document,
// e.g. "Soil: alluvial" or "Scheme: pm_kisan".
func (d Document) Ref() string {
	switch d.Type {
	case DocumentTypeSoil:
		return "Soil: " + d.Category
	case DocumentTypeCrop:
		return "Crop: " + d.Category
	case DocumentTypeScheme:
		return "Scheme: " + d.Category
	default:
		return d.Category
	}
}

// SearchResult represents a single retrieval hit. Results are produced per
// query and never persisted.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Score is the cosine similarity against the query vector, in [-1, 1].
	Score float64

	// Rank is the 1-based position in the result list.
	Rank int
}
