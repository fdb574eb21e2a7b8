// Package jsonapi implements the wire format of the API: JSON:API shaped
// resource documents, the five-link pagination contract, and the mapping
// from internal failures to error documents.
package jsonapi

// Resource is a single JSON:API resource object
type Resource struct {
	ID            string                  `json:"id,omitempty"`
	Type          string                  `json:"type"`
	Attributes    any                     `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Relationship points at a related resource by identifier
type Relationship struct {
	Data ResourceIdentifier `json:"data"`
}

// ResourceIdentifier is a type/id pair
type ResourceIdentifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Document wraps a single resource
type Document struct {
	Data *Resource `json:"data"`
}

// CollectionDocument wraps a resource collection plus navigation links
type CollectionDocument struct {
	Data  []Resource `json:"data"`
	Links *Links     `json:"links,omitempty"`
}

// NewDocument wraps a resource in a document envelope
func NewDocument(res Resource) *Document {
	return &Document{Data: &res}
}
