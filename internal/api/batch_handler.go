package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mohitcdry/automatic-recruitment-system/internal/pipeline"
)

var allowedExtensions = map[string]bool{
	".pdf": true, ".docx": true, ".doc": true, ".rtf": true, ".odt": true, ".txt": true,
}

// BatchScoreHandler accepts a batch of résumés plus a job description and
// queues them for scoring
// @Summary Score a batch of résumés
// @Description Upload CVs and a job description; returns a job id to poll for progress
// @Tags batch
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Résumé files (PDF/DOCX/TXT)"
// @Param job_description formData string true "Job description text"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /batch/score [post]
func (a *API) BatchScoreHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse multipart form (max 50MB across the batch)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		a.writeError(w, http.StatusBadRequest, "upload too large or invalid (max 50MB)")
		return
	}

	jobDescription := strings.TrimSpace(r.FormValue("job_description"))
	if jobDescription == "" {
		a.writeError(w, http.StatusBadRequest, "job_description is required")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		a.writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	var files []pipeline.Document
	for _, header := range fileHeaders {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExtensions[ext] {
			a.writeError(w, http.StatusBadRequest,
				fmt.Sprintf("invalid file type %s for %s (supported: PDF, DOCX, TXT)", ext, header.Filename))
			return
		}

		file, err := header.Open()
		if err != nil {
			a.writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot open upload %s", header.Filename))
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			a.writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot read upload %s", header.Filename))
			return
		}

		files = append(files, pipeline.Document{Filename: header.Filename, Data: data})
	}

	jobID := uuid.NewString()
	if err := a.db.CreateScoringJob(r.Context(), jobID, jobDescription, len(files)); err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to create scoring job")
		return
	}

	job := BatchJob{
		JobID:          jobID,
		Files:          files,
		JobDescription: jobDescription,
		Timestamp:      time.Now(),
	}
	if !a.queueBatchJob(job) {
		a.writeError(w, http.StatusServiceUnavailable, "scoring queue is full, try again later")
		return
	}

	a.writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

// JobStatusHandler reports batch progress
// @Summary Scoring job status
// @Description Returns the job's state and its done/total completion counter
// @Tags batch
// @Produce json
// @Param id query string true "Job ID"
// @Success 200 {object} storage.ScoringJob
// @Failure 404 {object} map[string]string
// @Router /batch/status [get]
func (a *API) JobStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jobID := r.URL.Query().Get("id")
	if jobID == "" {
		a.writeError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	job, err := a.db.GetJob(r.Context(), jobID)
	if err != nil {
		a.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	a.writeJSON(w, http.StatusOK, job)
}

// JobResultsHandler lists a batch's persisted per-file results
// @Summary Scoring job results
// @Description Every scored or failed file of one batch, in processing order
// @Tags batch
// @Produce json
// @Param id query string true "Job ID"
// @Success 200 {array} storage.StoredResult
// @Failure 404 {object} map[string]string
// @Router /batch/results [get]
func (a *API) JobResultsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jobID := r.URL.Query().Get("id")
	if jobID == "" {
		a.writeError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	if _, err := a.db.GetJob(r.Context(), jobID); err != nil {
		a.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	results, err := a.db.ListJobResults(r.Context(), jobID)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to load job results")
		return
	}

	a.writeJSON(w, http.StatusOK, results)
}
