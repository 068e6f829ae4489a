package api

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/ats"
	"github.com/mohitcdry/automatic-recruitment-system/internal/pipeline"
)

// BatchJob is one queued scoring batch.
type BatchJob struct {
	JobID          string
	Files          []pipeline.Document
	JobDescription string
	Timestamp      time.Time
}

// StartBackgroundWorkers launches the batch scoring worker.
func (a *API) StartBackgroundWorkers() {
	go a.batchWorker()
	a.logger.Info("background workers started")
}

// batchWorker drains the batch queue. One batch runs at a time; the
// pipeline fans out internally across its bounded pool.
func (a *API) batchWorker() {
	for job := range a.batchQueue {
		a.runBatch(job)
	}
}

func (a *API) runBatch(job BatchJob) {
	ctx := context.Background()
	log := a.logger.With(zap.String("job_id", job.JobID))

	if err := a.db.UpdateJobStatus(ctx, job.JobID, "processing", nil); err != nil {
		log.Error("failed to mark job processing", zap.Error(err))
		return
	}

	log.Info("scoring batch started",
		zap.Int("files", len(job.Files)),
		zap.Int("max_workers", a.cfg.MaxWorkers),
	)

	results := a.pipeline.ScoreBatch(ctx, job.Files, job.JobDescription, func(done, total int) {
		log.Info("batch progress", zap.Int("done", done), zap.Int("total", total))
		if err := a.db.UpdateJobProgress(ctx, job.JobID, done); err != nil {
			log.Warn("failed to record progress", zap.Error(err))
		}
	})

	failures := 0
	for _, r := range results {
		if r.Failed {
			failures++
		}
		if err := a.db.SaveCandidateResult(ctx, job.JobID, r.CandidateResult, r.ResumeText); err != nil {
			log.Warn("failed to persist result",
				zap.String("candidate_id", r.CandidateID),
				zap.Error(err),
			)
		}
	}

	shortlist := ats.Aggregate(pipeline.CandidateResults(results), a.cfg.ShortlistThreshold)
	a.shortlist.Publish(shortlist)

	if err := a.db.UpdateJobStatus(ctx, job.JobID, "completed", nil); err != nil {
		log.Error("failed to mark job completed", zap.Error(err))
	}

	log.Info("scoring batch completed",
		zap.Int("results", len(results)),
		zap.Int("failures", failures),
		zap.Int("shortlisted", len(shortlist.Candidates)),
		zap.Duration("took", time.Since(job.Timestamp)),
	)
}

// queueBatchJob enqueues without blocking; a full queue fails the job
// immediately so the operator can retry.
func (a *API) queueBatchJob(job BatchJob) bool {
	select {
	case a.batchQueue <- job:
		a.logger.Info("queued scoring batch",
			zap.String("job_id", job.JobID),
			zap.Int("files", len(job.Files)),
		)
		return true
	default:
		a.logger.Warn("batch queue full, dropping job", zap.String("job_id", job.JobID))
		errMsg := "queue full, job dropped"
		if err := a.db.UpdateJobStatus(context.Background(), job.JobID, "failed", &errMsg); err != nil {
			a.logger.Error("failed to mark dropped job", zap.Error(err))
		}
		return false
	}
}
