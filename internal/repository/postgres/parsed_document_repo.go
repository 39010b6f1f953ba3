package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"itinera/internal/domain"
	"itinera/internal/port"
)

type parsedDocumentRepo struct {
	db *sqlx.DB
}

// NewParsedDocumentRepo creates a new PostgreSQL-backed ParsedDocumentRepository.
func NewParsedDocumentRepo(db *sqlx.DB) port.ParsedDocumentRepository {
	return &parsedDocumentRepo{db: db}
}

// Save upserts by (user_id, drive_file_id): re-parsing a source document
// replaces its previous result rather than accumulating rows.
func (r *parsedDocumentRepo) Save(ctx context.Context, doc *domain.ParsedDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO parsed_documents (
		id, job_id, user_id, drive_file_id, document_type,
		parsed_data, confidence, parse_notes, raw_text, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10, $11
	)
	ON CONFLICT (user_id, drive_file_id) DO UPDATE SET
		job_id = EXCLUDED.job_id,
		document_type = EXCLUDED.document_type,
		parsed_data = EXCLUDED.parsed_data,
		confidence = EXCLUDED.confidence,
		parse_notes = EXCLUDED.parse_notes,
		raw_text = EXCLUDED.raw_text,
		updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.JobID, doc.UserID, doc.DriveFileID, doc.DocumentType,
		doc.ParsedData, doc.Confidence, doc.ParseNotes, doc.RawText, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("parsedDocumentRepo.Save: %w", err)
	}
	return nil
}

func (r *parsedDocumentRepo) GetByDriveFileID(ctx context.Context, userID uuid.UUID, driveFileID string) (*domain.ParsedDocument, error) {
	var doc domain.ParsedDocument
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM parsed_documents WHERE user_id = $1 AND drive_file_id = $2",
		userID, driveFileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("parsedDocumentRepo.GetByDriveFileID: %w", err)
	}
	return &doc, nil
}

func (r *parsedDocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ParsedDocument, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM parsed_documents WHERE user_id = $1", userID); err != nil {
		return nil, 0, fmt.Errorf("parsedDocumentRepo.ListByUser: %w", err)
	}

	var docs []domain.ParsedDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM parsed_documents
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 OFFSET $2 LIMIT $3`,
		userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("parsedDocumentRepo.ListByUser: %w", err)
	}
	return docs, total, nil
}
