package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Batch scoring endpoints
	mux.HandleFunc("/api/batch/score", a.BatchScoreHandler)
	mux.HandleFunc("/api/batch/status", a.JobStatusHandler)
	mux.HandleFunc("/api/batch/results", a.JobResultsHandler)

	// Shortlist endpoints
	mux.HandleFunc("/api/shortlist", a.ShortlistHandler)
	mux.HandleFunc("/api/shortlist/export", a.ExportShortlistHandler)
	mux.HandleFunc("/api/shortlist/mail", a.MailShortlistHandler)

	// Interview endpoints
	mux.HandleFunc("/api/interview/start", a.StartInterviewHandler)
	mux.HandleFunc("/api/interview/turn", a.TurnHandler)
	mux.HandleFunc("/api/interview/finish", a.FinishInterviewHandler)
	mux.HandleFunc("/api/interview/report", a.InterviewReportHandler)
	mux.HandleFunc("/api/interview/report/export", a.ExportReportHandler)
	mux.HandleFunc("/api/interview/reset", a.ResetInterviewHandler)

	return mux
}
