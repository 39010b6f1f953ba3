package port

import (
	"context"

	"github.com/google/uuid"

	"itinera/internal/domain"
)

// ParseJobRepository persists parse job status records.
type ParseJobRepository interface {
	Create(ctx context.Context, job *domain.ParseJob) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*domain.ParseJob, error)
	UpdateStatus(ctx context.Context, job *domain.ParseJob) error
	// ClaimPending atomically moves up to limit pending jobs to running and
	// returns them. Used by the queue worker; concurrent workers never claim
	// the same job twice.
	ClaimPending(ctx context.Context, limit int) ([]domain.ParseJob, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.ParseJob, error)
}

// ParsedDocumentRepository persists pipeline results.
type ParsedDocumentRepository interface {
	Save(ctx context.Context, doc *domain.ParsedDocument) error
	GetByDriveFileID(ctx context.Context, userID uuid.UUID, driveFileID string) (*domain.ParsedDocument, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ParsedDocument, int, error)
}
