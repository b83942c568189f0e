package domain

// EventType defines the type of event
type EventType string

const (
	EventDocumentCreated  EventType = "document_created"
	EventDocumentUpdated  EventType = "document_updated"
	EventDocumentDeleted  EventType = "document_deleted"
	EventRelationAssigned EventType = "relation_assigned"
	EventRelationRemoved  EventType = "relation_removed"
	EventDatasetImported  EventType = "dataset_imported"
)

// Event represents a change that occurred in the store
type Event struct {
	Type       EventType `json:"type"`
	Collection string    `json:"collection"`
	Key        string    `json:"key,omitempty"`
	Payload    any       `json:"payload,omitempty"`
}
