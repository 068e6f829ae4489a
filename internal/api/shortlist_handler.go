package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/ats"
)

// ShortlistHandler returns the currently published shortlist
// @Summary Current shortlist
// @Description Candidates above the score threshold from the latest completed batch, grouped by domain
// @Tags shortlist
// @Produce json
// @Success 200 {object} ats.Shortlist
// @Failure 404 {object} map[string]string
// @Router /shortlist [get]
func (a *API) ShortlistHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	shortlist := a.shortlist.Current()
	if shortlist == nil {
		a.writeError(w, http.StatusNotFound, "no batch has completed yet")
		return
	}

	a.writeJSON(w, http.StatusOK, shortlist)
}

// ExportShortlistHandler streams the shortlist as CSV
// @Summary Export shortlist as CSV
// @Tags shortlist
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} map[string]string
// @Router /shortlist/export [get]
func (a *API) ExportShortlistHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	shortlist := a.shortlist.Current()
	if shortlist == nil {
		a.writeError(w, http.StatusNotFound, "no batch has completed yet")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="shortlisted_candidates.csv"`)
	if err := ats.WriteCSV(w, shortlist); err != nil {
		a.logger.Error("csv export failed", zap.Error(err))
	}
}

type mailRequest struct {
	JobTitle string `json:"job_title"`
}

// MailShortlistHandler bulk-emails every shortlisted candidate
// @Summary Send interview invitations
// @Description Generates a personalized invitation per candidate and delivers the batch over SMTP
// @Tags shortlist
// @Accept json
// @Produce json
// @Param request body mailRequest true "Role title for the invitation"
// @Success 200 {object} map[string]int
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /shortlist/mail [post]
func (a *API) MailShortlistHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if a.mailer == nil {
		a.writeError(w, http.StatusServiceUnavailable, "smtp is not configured")
		return
	}

	shortlist := a.shortlist.Current()
	if shortlist == nil || len(shortlist.Candidates) == 0 {
		a.writeError(w, http.StatusNotFound, "no shortlisted candidates to mail")
		return
	}

	var req mailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	invitations, err := a.mailer.Compose(r.Context(), shortlist.Candidates, req.JobTitle, a.cfg.InterviewLink)
	if err != nil {
		a.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	sent, err := a.mailer.Send(invitations)
	if err != nil {
		// Transport failure aborts the rest of the batch.
		a.logger.Error("bulk mail aborted", zap.Int("sent", sent), zap.Error(err))
		a.writeJSON(w, http.StatusBadGateway, map[string]any{
			"error": err.Error(),
			"sent":  sent,
		})
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
}
