package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/interview"
	"github.com/mohitcdry/automatic-recruitment-system/internal/speech"
)

// StartInterviewHandler starts a session from an uploaded résumé or a
// stored candidate id
// @Summary Start an interview
// @Description Provide a résumé file or the candidate_id of a previously scored candidate
// @Tags interview
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Résumé file"
// @Param candidate_id formData string false "Stored candidate id"
// @Param candidate_name formData string false "Candidate display name"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /interview/start [post]
func (a *API) StartInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		a.writeError(w, http.StatusBadRequest, "upload too large or invalid (max 10MB)")
		return
	}

	candidateName := strings.TrimSpace(r.FormValue("candidate_name"))
	resumeText := ""

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		resumeText, err = a.parser.ExtractReader(header.Filename, file)
		if err != nil {
			a.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to extract resume: %v", err))
			return
		}
	} else if candidateID := strings.TrimSpace(r.FormValue("candidate_id")); candidateID != "" {
		resumeText, err = a.db.GetResumeText(r.Context(), candidateID)
		if err != nil {
			a.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if candidateName == "" {
			if name, err := a.db.GetCandidateName(r.Context(), candidateID); err == nil {
				candidateName = name
			}
		}
	} else {
		a.writeError(w, http.StatusBadRequest, "provide a resume file or candidate_id")
		return
	}

	session, err := a.interviews.Start(r.Context(), candidateName, resumeText)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	audioPath, err := a.interviews.Speak(r.Context())
	if err != nil {
		a.logger.Warn("failed to synthesize opening question", zap.Error(err))
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"state":      session.State,
		"candidate":  session.CandidateName,
		"assistant":  session.Transcript[len(session.Transcript)-1].Content,
		"audio_path": audioPath,
	})
}

type turnRequest struct {
	Utterance string `json:"utterance"`
}

// TurnHandler runs one interview cycle
// @Summary Submit one interview turn
// @Description Accepts a typed utterance as JSON, or a WAV recording as multipart "audio" to run through speech recognition
// @Tags interview
// @Accept json
// @Produce json
// @Success 200 {object} interview.TurnOutcome
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /interview/turn [post]
func (a *API) TurnHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	utterance, ok := a.resolveUtterance(w, r)
	if !ok {
		return
	}

	outcome, err := a.interviews.Turn(r.Context(), utterance)
	if err != nil {
		a.writeInterviewError(w, err)
		return
	}

	// Speak whenever the model produced a turn, including the farewell
	// on the concluding cycle; the dedup guard prevents double synthesis.
	if outcome.Assistant != "" {
		audioPath, err := a.interviews.Speak(r.Context())
		if err != nil {
			a.logger.Warn("failed to synthesize assistant turn", zap.Error(err))
		}
		outcome.AudioPath = audioPath
	}

	a.writeJSON(w, http.StatusOK, outcome)
}

// resolveUtterance pulls the user's input from the request: recognized
// speech for audio uploads, raw text otherwise. A no-match recognition
// returns an empty utterance, which the manager answers with a
// retry-next-cycle warning.
func (a *API) resolveUtterance(w http.ResponseWriter, r *http.Request) (string, bool) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req turnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.writeError(w, http.StatusBadRequest, "invalid JSON")
			return "", false
		}
		return req.Utterance, true
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		a.writeError(w, http.StatusBadRequest, "upload too large or invalid (max 10MB)")
		return "", false
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "no audio uploaded")
		return "", false
	}
	defer file.Close()

	if a.recognizer == nil {
		a.writeError(w, http.StatusServiceUnavailable, "speech recognition is not configured")
		return "", false
	}

	wav, err := io.ReadAll(file)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "cannot read audio upload")
		return "", false
	}

	text, err := a.recognizer.Recognize(r.Context(), wav)
	if errors.Is(err, speech.ErrNoMatch) || errors.Is(err, speech.ErrCanceled) {
		return "", true
	}
	if err != nil {
		a.writeError(w, http.StatusBadGateway, err.Error())
		return "", false
	}

	return text, true
}

// FinishInterviewHandler forces the transition to report generation
// @Summary Conclude the interview
// @Tags interview
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /interview/finish [post]
func (a *API) FinishInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := a.interviews.Finish(); err != nil {
		a.writeInterviewError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"state": string(interview.StateReport)})
}

// InterviewReportHandler generates (or returns the cached) evaluation
// @Summary Interview evaluation report
// @Tags interview
// @Produce json
// @Success 200 {object} interview.Report
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /interview/report [get]
func (a *API) InterviewReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := a.interviews.Report(r.Context())
	if err != nil {
		var parseErr *interview.ParseError
		if errors.As(err, &parseErr) {
			// Surface the model's raw text instead of crashing the session.
			a.writeJSON(w, http.StatusBadGateway, map[string]string{
				"error": parseErr.Error(),
				"raw":   parseErr.Raw,
			})
			return
		}
		a.writeInterviewError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, report)
}

// ExportReportHandler streams the report as plain text
// @Summary Export interview report
// @Tags interview
// @Produce text/plain
// @Success 200 {string} string "Report text"
// @Failure 409 {object} map[string]string
// @Router /interview/report/export [get]
func (a *API) ExportReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := a.interviews.Report(r.Context())
	if err != nil {
		a.writeInterviewError(w, err)
		return
	}

	filename := fmt.Sprintf("%s_interview_report.txt", strings.ReplaceAll(report.CandidateName, " ", "_"))
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := interview.WriteText(w, report); err != nil {
		a.logger.Error("report export failed", zap.Error(err))
	}
}

// ResetInterviewHandler discards the session from any state
// @Summary Reset the interview
// @Tags interview
// @Produce json
// @Success 200 {object} map[string]string
// @Router /interview/reset [post]
func (a *API) ResetInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	a.interviews.Reset()
	a.writeJSON(w, http.StatusOK, map[string]string{"state": string(interview.StateSetup)})
}

func (a *API) writeInterviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrNoSession), errors.Is(err, interview.ErrWrongState), errors.Is(err, interview.ErrNoReportYet):
		a.writeError(w, http.StatusConflict, err.Error())
	default:
		a.writeError(w, http.StatusBadGateway, err.Error())
	}
}
