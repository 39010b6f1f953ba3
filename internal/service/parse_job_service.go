package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/google/uuid"

	"itinera/internal/domain"
	"itinera/internal/parser"
	"itinera/internal/port"
)

// DocumentPipeline is the pipeline contract the job runner depends on.
type DocumentPipeline interface {
	ParseDocument(ctx context.Context, rawText, modelID string) parser.State
}

// TriggerInput is the DTO for submitting a document for parsing.
type TriggerInput struct {
	UserID      uuid.UUID
	DriveFileID string
	FileContent []byte
	ModelID     string
}

// ParseJobService defines the durable parse job contract.
type ParseJobService interface {
	Trigger(ctx context.Context, input *TriggerInput) (*domain.ParseJob, error)
	GetStatus(ctx context.Context, jobID uuid.UUID) (*domain.ParseJob, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]domain.ParseJob, error)
	ListResults(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ParsedDocument, int, error)
	GetResult(ctx context.Context, userID uuid.UUID, driveFileID string) (*domain.ParsedDocument, error)
	Run(ctx context.Context, job *domain.ParseJob, maxAttempts int)
}

// ParseJobServiceConfig holds runner settings.
type ParseJobServiceConfig struct {
	// QueueEnabled selects durable dispatch via the queue worker. When false,
	// Trigger executes the job inline through the identical Run path.
	QueueEnabled       bool
	DefaultModelID     string
	MaxStoredTextChars int
}

type parseJobService struct {
	jobRepo   port.ParseJobRepository
	docRepo   port.ParsedDocumentRepository
	extractor port.TextExtractor
	pipeline  DocumentPipeline
	cfg       ParseJobServiceConfig
}

// NewParseJobService creates a new ParseJobService implementation.
func NewParseJobService(
	jobRepo port.ParseJobRepository,
	docRepo port.ParsedDocumentRepository,
	extractor port.TextExtractor,
	pipeline DocumentPipeline,
	cfg ParseJobServiceConfig,
) ParseJobService {
	if cfg.MaxStoredTextChars <= 0 {
		cfg.MaxStoredTextChars = 50000
	}
	return &parseJobService{
		jobRepo:   jobRepo,
		docRepo:   docRepo,
		extractor: extractor,
		pipeline:  pipeline,
		cfg:       cfg,
	}
}

// Trigger persists a pending job for the document. In queued mode the job
// rests pending until the queue worker claims it; otherwise the same Run path
// executes inline before Trigger returns, with identical state transitions.
func (s *parseJobService) Trigger(ctx context.Context, input *TriggerInput) (*domain.ParseJob, error) {
	if input.DriveFileID == "" {
		return nil, domain.ErrMissingDriveFileID
	}
	if len(input.FileContent) == 0 {
		return nil, domain.ErrEmptyFileContent
	}
	modelID := input.ModelID
	if modelID == "" {
		modelID = s.cfg.DefaultModelID
	}

	metadata, _ := json.Marshal(map[string]string{"driveFileId": input.DriveFileID})

	job := &domain.ParseJob{
		ID:          uuid.New(),
		UserID:      input.UserID,
		DriveFileID: input.DriveFileID,
		JobType:     domain.JobTypeParseDocument,
		Status:      domain.JobStatusPending,
		ModelID:     modelID,
		FileContent: input.FileContent,
		Metadata:    metadata,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating parse job: %w", err)
	}

	if s.cfg.QueueEnabled {
		log.Printf("parseJobService.Trigger: job %s enqueued for file %s", job.ID, job.DriveFileID)
		return job, nil
	}

	log.Printf("parseJobService.Trigger: queue disabled, processing job %s synchronously", job.ID)

	job.Status = domain.JobStatusRunning
	job.Attempts = 1
	if err := s.jobRepo.UpdateStatus(ctx, job); err != nil {
		// No worker will ever claim this row; don't strand it pending.
		job.Status = domain.JobStatusFailed
		job.Error = fmt.Sprintf("marking job running: %v", err)
		if ferr := s.jobRepo.UpdateStatus(ctx, job); ferr != nil {
			log.Printf("parseJobService.Trigger: failed to mark stranded job %s failed: %v", job.ID, ferr)
		}
		return nil, fmt.Errorf("marking job running: %w", err)
	}
	s.Run(ctx, job, 1)

	return job, nil
}

// Run executes one parsing attempt for a job already marked running. The
// pipeline itself never fails; hard failures (text extraction, persistence)
// requeue the job while attempts remain and force it failed at the limit.
func (s *parseJobService) Run(ctx context.Context, job *domain.ParseJob, maxAttempts int) {
	if job.Status.Terminal() {
		log.Printf("parseJobService.Run: job %s already %s, skipping", job.ID, job.Status)
		return
	}

	rawText, err := s.extractor.ExtractText(ctx, job.FileContent)
	if err != nil {
		s.handleFailure(ctx, job, maxAttempts, fmt.Sprintf("extracting text: %v", err))
		return
	}

	state := s.pipeline.ParseDocument(ctx, rawText, job.ModelID)

	parsedData := state.ValidatedData
	if len(parsedData) == 0 {
		parsedData = state.ExtractedData
	}
	parsedJSON, err := json.Marshal(parsedData)
	if err != nil {
		s.handleFailure(ctx, job, maxAttempts, fmt.Sprintf("encoding parsed data: %v", err))
		return
	}
	notesJSON, _ := json.Marshal(state.Errors)

	doc := &domain.ParsedDocument{
		ID:           uuid.New(),
		JobID:        job.ID,
		UserID:       job.UserID,
		DriveFileID:  job.DriveFileID,
		DocumentType: state.DocumentType,
		ParsedData:   parsedJSON,
		Confidence:   state.Confidence,
		ParseNotes:   notesJSON,
		RawText:      truncate(rawText, s.cfg.MaxStoredTextChars),
	}
	if err := s.docRepo.Save(ctx, doc); err != nil {
		s.handleFailure(ctx, job, maxAttempts, fmt.Sprintf("saving parsed document: %v", err))
		return
	}

	job.Status = domain.JobStatusCompleted
	job.Error = ""
	if err := s.jobRepo.UpdateStatus(ctx, job); err != nil {
		log.Printf("parseJobService.Run: failed to mark job %s completed: %v", job.ID, err)
		return
	}
	log.Printf("parseJobService.Run: job %s completed type=%s confidence=%.2f",
		job.ID, state.DocumentType, state.Confidence)
}

// handleFailure applies the platform retry policy: below the attempt limit
// the whole job goes back to pending for re-execution, at the limit it is
// terminally failed with the captured message.
func (s *parseJobService) handleFailure(ctx context.Context, job *domain.ParseJob, maxAttempts int, errMsg string) {
	if job.Attempts < maxAttempts {
		job.Status = domain.JobStatusPending
		job.Error = errMsg
		if err := s.jobRepo.UpdateStatus(ctx, job); err != nil {
			log.Printf("parseJobService.handleFailure: failed to requeue job %s: %v", job.ID, err)
			return
		}
		log.Printf("parseJobService.handleFailure: job %s requeued (attempt %d/%d): %s",
			job.ID, job.Attempts, maxAttempts, errMsg)
		return
	}

	job.Status = domain.JobStatusFailed
	job.Error = errMsg
	if err := s.jobRepo.UpdateStatus(ctx, job); err != nil {
		log.Printf("parseJobService.handleFailure: failed to mark job %s failed: %v", job.ID, err)
		return
	}
	log.Printf("parseJobService.handleFailure: job %s failed: %s", job.ID, errMsg)
}

func (s *parseJobService) GetStatus(ctx context.Context, jobID uuid.UUID) (*domain.ParseJob, error) {
	return s.jobRepo.GetByID(ctx, jobID)
}

func (s *parseJobService) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.ParseJob, error) {
	return s.jobRepo.ListActiveByUser(ctx, userID)
}

func (s *parseJobService) ListResults(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ParsedDocument, int, error) {
	return s.docRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *parseJobService) GetResult(ctx context.Context, userID uuid.UUID, driveFileID string) (*domain.ParsedDocument, error) {
	return s.docRepo.GetByDriveFileID(ctx, userID, driveFileID)
}

// truncate bounds text to at most n bytes, backing the cut off to a rune
// boundary. A split rune would leave an invalid byte sequence that Postgres
// TEXT rejects on insert.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
