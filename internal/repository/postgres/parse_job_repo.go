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

type parseJobRepo struct {
	db *sqlx.DB
}

// NewParseJobRepo creates a new PostgreSQL-backed ParseJobRepository.
func NewParseJobRepo(db *sqlx.DB) port.ParseJobRepository {
	return &parseJobRepo{db: db}
}

func (r *parseJobRepo) Create(ctx context.Context, job *domain.ParseJob) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `INSERT INTO parse_jobs (
		id, user_id, drive_file_id, job_type, status, error,
		model_id, file_content, attempts, metadata, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11, $12
	)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.UserID, job.DriveFileID, job.JobType, job.Status, job.Error,
		job.ModelID, job.FileContent, job.Attempts, job.Metadata, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("parseJobRepo.Create: %w", err)
	}
	return nil
}

func (r *parseJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.ParseJob, error) {
	var job domain.ParseJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM parse_jobs WHERE id = $1", jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("parseJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *parseJobRepo) UpdateStatus(ctx context.Context, job *domain.ParseJob) error {
	job.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE parse_jobs SET
			status = $1, error = $2, attempts = $3, updated_at = $4
		 WHERE id = $5`,
		job.Status, job.Error, job.Attempts, job.UpdatedAt,
		job.ID)
	if err != nil {
		return fmt.Errorf("parseJobRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// ClaimPending flips up to limit pending jobs to running inside one statement.
// FOR UPDATE SKIP LOCKED keeps concurrent workers from claiming the same job.
func (r *parseJobRepo) ClaimPending(ctx context.Context, limit int) ([]domain.ParseJob, error) {
	query := `UPDATE parse_jobs SET status = $1, attempts = attempts + 1, updated_at = $2
		WHERE id IN (
			SELECT id FROM parse_jobs
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var jobs []domain.ParseJob
	err := r.db.SelectContext(ctx, &jobs, query,
		domain.JobStatusRunning, time.Now().UTC(), domain.JobStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("parseJobRepo.ClaimPending: %w", err)
	}
	return jobs, nil
}

func (r *parseJobRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.ParseJob, error) {
	var jobs []domain.ParseJob
	err := r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM parse_jobs
		 WHERE user_id = $1 AND status IN ($2, $3)
		 ORDER BY created_at DESC`,
		userID, domain.JobStatusPending, domain.JobStatusRunning)
	if err != nil {
		return nil, fmt.Errorf("parseJobRepo.ListActiveByUser: %w", err)
	}
	return jobs, nil
}
