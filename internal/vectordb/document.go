package vectordb

import "time"

// DocumentType categorizes the kind of document stored in the vector DB.
type DocumentType string

const (
	DocTypeSubsection DocumentType = "subsection"
	DocTypePart       DocumentType = "part"
)

// Document represents a piece of content to be stored and searched.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds structured information about a document.
type DocumentMetadata struct {
	Lang         string
	PartID       string
	SectionID    string
	SubsectionID string
	Title        string
	Type         DocumentType
	ContentHash  string
	LastUpdated  time.Time
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// SearchFilter allows narrowing search results by metadata fields.
type SearchFilter struct {
	Type   *DocumentType
	Lang   *string
	PartID *string
}

// DocumentID is the stable id of a subsection document.
func DocumentID(lang, subsectionID string) string {
	return lang + ":" + subsectionID
}

// PartDocumentID is the stable id of a part overview document.
func PartDocumentID(lang, partID string) string {
	return lang + ":" + partID
}
