package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/mohitcdry/automatic-recruitment-system/internal/ats"
)

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// EnsureSchema creates the tables this service needs.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scoring_jobs (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL DEFAULT 'pending',
			job_description TEXT NOT NULL DEFAULT '',
			total INT NOT NULL DEFAULT 0,
			done INT NOT NULL DEFAULT 0,
			error_message TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			completed_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS candidate_results (
			id BIGSERIAL PRIMARY KEY,
			job_id TEXT NOT NULL REFERENCES scoring_jobs(id),
			candidate_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT 'N/A',
			email TEXT NOT NULL DEFAULT 'N/A',
			score INT NOT NULL DEFAULT 0,
			domain TEXT NOT NULL DEFAULT '',
			comment TEXT NOT NULL DEFAULT '',
			failed BOOLEAN NOT NULL DEFAULT false,
			error_detail TEXT NOT NULL DEFAULT '',
			resume_text TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidate_results_candidate_id
			ON candidate_results (candidate_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.connection.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// CreateScoringJob inserts a pending batch job row.
func (db *DB) CreateScoringJob(ctx context.Context, jobID, jobDescription string, total int) error {
	query := `INSERT INTO scoring_jobs (id, status, job_description, total) VALUES ($1, 'pending', $2, $3)`
	_, err := db.connection.ExecContext(ctx, query, jobID, jobDescription, total)
	return err
}

// UpdateJobProgress bumps the completed-file counter.
func (db *DB) UpdateJobProgress(ctx context.Context, jobID string, done int) error {
	query := `UPDATE scoring_jobs SET done = $2 WHERE id = $1`
	_, err := db.connection.ExecContext(ctx, query, jobID, done)
	return err
}

// UpdateJobStatus moves a job between lifecycle states.
func (db *DB) UpdateJobStatus(ctx context.Context, jobID, status string, errorMessage *string) error {
	query := `UPDATE scoring_jobs
		SET status = $2,
		    error_message = $3,
		    completed_at = CASE WHEN $2 IN ('completed', 'failed') THEN now() ELSE completed_at END
		WHERE id = $1`
	_, err := db.connection.ExecContext(ctx, query, jobID, status, errorMessage)
	return err
}

// GetJob fetches one job's status row.
func (db *DB) GetJob(ctx context.Context, jobID string) (*ScoringJob, error) {
	query := `SELECT id, status, job_description, total, done, error_message, created_at, completed_at
		FROM scoring_jobs WHERE id = $1`

	var job ScoringJob
	err := db.connection.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID, &job.Status, &job.JobDescription, &job.Total, &job.Done,
		&job.ErrorMessage, &job.CreatedAt, &job.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scoring job %s not found", jobID)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// SaveCandidateResult persists one pipeline result with its résumé text.
func (db *DB) SaveCandidateResult(ctx context.Context, jobID string, result ats.CandidateResult, resumeText string) error {
	query := `INSERT INTO candidate_results
		(job_id, candidate_id, name, email, score, domain, comment, failed, error_detail, resume_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := db.connection.ExecContext(ctx, query,
		jobID, result.CandidateID, result.Name, result.Email, result.Score,
		result.Domain, result.Comment, result.Failed, result.ErrorDetail, resumeText,
	)
	return err
}

// ListJobResults returns every persisted result of one batch in insertion
// order.
func (db *DB) ListJobResults(ctx context.Context, jobID string) ([]StoredResult, error) {
	query := `SELECT job_id, candidate_id, name, email, score, domain, comment, failed, error_detail, resume_text, created_at
		FROM candidate_results WHERE job_id = $1 ORDER BY id`

	rows, err := db.connection.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var r StoredResult
		if err := rows.Scan(
			&r.JobID, &r.CandidateID, &r.Name, &r.Email, &r.Score,
			&r.Domain, &r.Comment, &r.Failed, &r.ErrorDetail, &r.ResumeText, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetResumeText returns the most recently stored résumé text for a
// candidate id, for starting an interview without a fresh upload.
func (db *DB) GetResumeText(ctx context.Context, candidateID string) (string, error) {
	query := `SELECT resume_text FROM candidate_results
		WHERE candidate_id = $1 AND resume_text <> ''
		ORDER BY created_at DESC LIMIT 1`

	var text string
	err := db.connection.QueryRowContext(ctx, query, candidateID).Scan(&text)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no stored resume for candidate %s", candidateID)
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

// GetCandidateName returns the stored name for a candidate id, if any.
func (db *DB) GetCandidateName(ctx context.Context, candidateID string) (string, error) {
	query := `SELECT name FROM candidate_results
		WHERE candidate_id = $1
		ORDER BY created_at DESC LIMIT 1`

	var name string
	err := db.connection.QueryRowContext(ctx, query, candidateID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}
