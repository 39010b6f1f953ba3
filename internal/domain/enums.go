package domain

// DocumentType is the classification a parse run assigns to a source document.
type DocumentType string

const (
	DocumentTypeHousing        DocumentType = "housing"
	DocumentTypeTransportation DocumentType = "transportation"
	DocumentTypeUnknown        DocumentType = "unknown"
)

// Valid reports whether t is one of the three recognized document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeHousing, DocumentTypeTransportation, DocumentTypeUnknown:
		return true
	}
	return false
}

// JobStatus represents the lifecycle of a parse job.
// pending → running → completed/failed; terminal states are never revisited.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether s is a terminal job status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// JobTypeParseDocument is the only job type this service currently runs.
const JobTypeParseDocument = "parse_document"
