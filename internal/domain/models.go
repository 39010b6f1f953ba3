package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ParseJob tracks one durable execution of the parsing pipeline against a
// single source document. FileContent carries the raw PDF bytes so a queued
// job is self-contained and can be re-run from pending without refetching.
type ParseJob struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	DriveFileID string          `db:"drive_file_id" json:"drive_file_id"`
	JobType     string          `db:"job_type" json:"job_type"`
	Status      JobStatus       `db:"status" json:"status"`
	Error       string          `db:"error" json:"error,omitempty"`
	ModelID     string          `db:"model_id" json:"model_id"`
	FileContent []byte          `db:"file_content" json:"-"`
	Attempts    int             `db:"attempts" json:"attempts"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// ParsedDocument is the persisted result of a completed parse job.
// ParsedData holds the validated payload when the validator produced one,
// otherwise the raw extraction.
type ParsedDocument struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	JobID        uuid.UUID       `db:"job_id" json:"job_id"`
	UserID       uuid.UUID       `db:"user_id" json:"user_id"`
	DriveFileID  string          `db:"drive_file_id" json:"drive_file_id"`
	DocumentType DocumentType    `db:"document_type" json:"document_type"`
	ParsedData   json.RawMessage `db:"parsed_data" json:"parsed_data"`
	Confidence   float64         `db:"confidence" json:"confidence"`
	ParseNotes   json.RawMessage `db:"parse_notes" json:"parse_notes,omitempty"`
	RawText      string          `db:"raw_text" json:"raw_text,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
