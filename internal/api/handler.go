package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/ats"
	"github.com/mohitcdry/automatic-recruitment-system/internal/config"
	"github.com/mohitcdry/automatic-recruitment-system/internal/cv"
	"github.com/mohitcdry/automatic-recruitment-system/internal/interview"
	"github.com/mohitcdry/automatic-recruitment-system/internal/llm"
	"github.com/mohitcdry/automatic-recruitment-system/internal/mailer"
	"github.com/mohitcdry/automatic-recruitment-system/internal/pipeline"
	"github.com/mohitcdry/automatic-recruitment-system/internal/speech"
	"github.com/mohitcdry/automatic-recruitment-system/internal/storage"
)

type recognizer interface {
	Recognize(ctx context.Context, wav []byte) (string, error)
}

type API struct {
	cfg        *config.Config
	db         *storage.DB
	parser     *cv.Parser
	pipeline   *pipeline.Pipeline
	shortlist  *ats.Store
	mailer     *mailer.Mailer
	interviews *interview.Manager
	recognizer recognizer
	logger     *zap.Logger

	batchQueue chan BatchJob
}

// NewAPI wires the service together. The scoring client is mandatory;
// speech and mail degrade gracefully when their credentials are absent.
func NewAPI(ctx context.Context, cfg *config.Config, db *storage.DB, logger *zap.Logger) (*API, error) {
	client, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}

	parser := cv.NewParser(cfg.UploadsDir)
	scorer := llm.NewScorer(client, logger)
	pipe := pipeline.New(parser, scorer, cfg.MaxWorkers, logger)

	var speechClient *speech.Client
	if cfg.SpeechKey != "" && cfg.SpeechRegion != "" {
		speechClient, err = speech.NewClient(cfg.SpeechKey, cfg.SpeechRegion, cfg.SpeechVoice, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("speech credentials not configured, interviews run text-only")
	}

	audioStore := speech.NewStore(cfg.UploadsDir, logger)

	var synth interview.Synthesizer
	var rec recognizer
	if speechClient != nil {
		synth = speechClient
		rec = speechClient
	}

	manager := interview.NewManager(client, synth, audioStore, cfg.InterviewMaxDuration, logger)

	var mail *mailer.Mailer
	if cfg.SMTPUser != "" && cfg.SMTPPassword != "" {
		dialer := mailer.NewSMTPDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
		mail = mailer.New(client, dialer, cfg.SMTPUser, logger)
	} else {
		logger.Warn("smtp credentials not configured, bulk mail disabled")
	}

	a := &API{
		cfg:        cfg,
		db:         db,
		parser:     parser,
		pipeline:   pipe,
		shortlist:  ats.NewStore(),
		mailer:     mail,
		interviews: manager,
		recognizer: rec,
		logger:     logger,
		batchQueue: make(chan BatchJob, 10), // Buffer for 10 pending batches
	}

	a.StartBackgroundWorkers()

	return a, nil
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("encode response", zap.Error(err))
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"error": message})
}
