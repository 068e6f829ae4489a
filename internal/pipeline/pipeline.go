package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mohitcdry/automatic-recruitment-system/internal/ats"
	"github.com/mohitcdry/automatic-recruitment-system/internal/llm"
)

// Document is one uploaded résumé handed to the pipeline.
type Document struct {
	Filename string
	Data     []byte
}

// Result pairs a candidate's scoring outcome with the extracted résumé
// text, which downstream persistence needs but the shortlist view does
// not.
type Result struct {
	ats.CandidateResult
	ResumeText string
}

// CandidateResults projects the batch down to the shortlist-facing
// records.
func CandidateResults(results []Result) []ats.CandidateResult {
	out := make([]ats.CandidateResult, len(results))
	for i, r := range results {
		out[i] = r.CandidateResult
	}
	return out
}

// Extractor converts a document to plain text.
type Extractor interface {
	Extract(filename string, data []byte) (string, error)
}

// Scorer evaluates résumé text against a job description.
type Scorer interface {
	ScoreResume(ctx context.Context, resumeText, jobDescription string) (*llm.ResumeEvaluation, error)
}

// ProgressFunc receives the monotonically increasing completion count
// after each file finishes, success or failure. Used for progress display
// only, never for control flow.
type ProgressFunc func(done, total int)

// Pipeline fans a batch of résumés out across a bounded worker pool. Each
// file gets exactly one attempt at extraction and scoring; one file's
// failure never cancels or blocks the others.
type Pipeline struct {
	extractor  Extractor
	scorer     Scorer
	maxWorkers int
	logger     *zap.Logger
}

const defaultMaxWorkers = 8

func New(extractor Extractor, scorer Scorer, maxWorkers int, logger *zap.Logger) *Pipeline {
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	return &Pipeline{
		extractor:  extractor,
		scorer:     scorer,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// ScoreBatch scores every document and returns one CandidateResult per
// input file, in completion order. Callers must not rely on the ordering;
// the aggregator re-sorts deterministically afterward.
func (p *Pipeline) ScoreBatch(ctx context.Context, files []Document, jobDescription string, onProgress ProgressFunc) []Result {
	total := len(files)
	if total == 0 {
		return []Result{}
	}

	resultCh := make(chan Result, total)

	var eg errgroup.Group
	eg.SetLimit(p.maxWorkers)

	for _, file := range files {
		file := file
		eg.Go(func() error {
			resultCh <- p.scoreOne(ctx, file, jobDescription)
			return nil
		})
	}

	go func() {
		eg.Wait() //nolint:errcheck // workers never return errors
		close(resultCh)
	}()

	results := make([]Result, 0, total)
	for result := range resultCh {
		results = append(results, result)
		if onProgress != nil {
			onProgress(len(results), total)
		}
	}

	return results
}

func (p *Pipeline) scoreOne(ctx context.Context, file Document, jobDescription string) Result {
	result := Result{CandidateResult: ats.CandidateResult{
		SourceFilename: file.Filename,
		CandidateID:    candidateID(file.Filename),
		Name:           "N/A",
		Email:          "N/A",
	}}

	text, err := p.extractor.Extract(file.Filename, file.Data)
	if err != nil {
		p.logger.Warn("extraction failed",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		result.Failed = true
		result.ErrorDetail = err.Error()
		return result
	}
	result.ResumeText = text

	eval, err := p.scorer.ScoreResume(ctx, text, jobDescription)
	if err != nil {
		p.logger.Warn("scoring failed",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		result.Failed = true
		result.ErrorDetail = err.Error()
		return result
	}

	result.Name = eval.Name
	result.Email = eval.Email
	result.Score = eval.Score
	result.Domain = eval.Domain
	result.Comment = eval.Comment

	return result
}

// candidateID derives a batch-unique id from the source filename with the
// extension stripped.
func candidateID(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
