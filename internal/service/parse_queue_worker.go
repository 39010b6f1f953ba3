package service

import (
	"context"
	"log"
	"sync"
	"time"

	"itinera/internal/port"
)

// ParseQueueConfig holds settings for the parse queue worker.
type ParseQueueConfig struct {
	PollInterval time.Duration
	MaxAttempts  int
	Concurrency  int
}

// ParseQueueWorker polls for pending parse jobs and dispatches them. It is
// the durable execution mode: jobs it claims have already been flipped to
// running with their attempt count incremented.
type ParseQueueWorker struct {
	jobRepo port.ParseJobRepository
	jobSvc  ParseJobService
	cfg     ParseQueueConfig
	wg      sync.WaitGroup
}

// NewParseQueueWorker creates a new ParseQueueWorker.
func NewParseQueueWorker(jobRepo port.ParseJobRepository, jobSvc ParseJobService, cfg ParseQueueConfig) *ParseQueueWorker {
	return &ParseQueueWorker{
		jobRepo: jobRepo,
		jobSvc:  jobSvc,
		cfg:     cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight parse goroutines have finished.
func (w *ParseQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("parseQueueWorker: started (poll=%s, concurrency=%d, maxAttempts=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			log.Printf("parseQueueWorker: shutting down, waiting for in-flight parses...")
			w.wg.Wait()
			log.Printf("parseQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			jobs, err := w.jobRepo.ClaimPending(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll, exit gracefully
					continue
				}
				log.Printf("parseQueueWorker: ClaimPending error: %v", err)
				continue
			}

			for i := range jobs {
				job := jobs[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight parses complete even during shutdown.
					runCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
					defer cancel()

					log.Printf("parseQueueWorker: dispatching job %s (attempt %d)", job.ID, job.Attempts)
					w.jobSvc.Run(runCtx, &job, w.cfg.MaxAttempts)
				}()
			}
		}
	}
}
