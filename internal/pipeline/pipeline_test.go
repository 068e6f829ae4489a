package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/llm"
)

type stubExtractor struct {
	failFor map[string]bool
}

func (s *stubExtractor) Extract(filename string, _ []byte) (string, error) {
	if s.failFor[filename] {
		return "", errors.New("failed to parse document: corrupt input")
	}
	return "resume text for " + filename, nil
}

type stubScorer struct {
	mu      sync.Mutex
	calls   int
	failFor map[string]bool

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (s *stubScorer) ScoreResume(_ context.Context, resumeText, _ string) (*llm.ResumeEvaluation, error) {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		max := s.maxInFlight.Load()
		if current <= max || s.maxInFlight.CompareAndSwap(max, current) {
			break
		}
	}

	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	for name := range s.failFor {
		if strings.Contains(resumeText, name) {
			return nil, errors.New("api error")
		}
	}

	return &llm.ResumeEvaluation{
		Name:    "Candidate",
		Email:   "candidate@example.com",
		Score:   80,
		Domain:  "Information Technology",
		Comment: "Looks fine.",
	}, nil
}

func docs(n int) []Document {
	files := make([]Document, n)
	for i := range files {
		files[i] = Document{Filename: fmt.Sprintf("cv_%d.pdf", i+1), Data: []byte("pdf")}
	}
	return files
}

func TestScoreBatchOneResultPerFile(t *testing.T) {
	p := New(&stubExtractor{}, &stubScorer{}, 4, zap.NewNop())

	results := p.ScoreBatch(context.Background(), docs(7), "job", nil)
	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if r.Failed {
			t.Fatalf("unexpected failure for %s: %s", r.SourceFilename, r.ErrorDetail)
		}
		seen[r.CandidateID] = true
	}
	if len(seen) != 7 {
		t.Fatalf("candidate ids not unique: %v", seen)
	}
	if !seen["cv_3"] {
		t.Fatalf("expected candidate id without extension, got %v", seen)
	}
}

func TestScoreBatchIsolatesCorruptFile(t *testing.T) {
	extractor := &stubExtractor{failFor: map[string]bool{"cv_3.pdf": true}}
	scorer := &stubScorer{}
	p := New(extractor, scorer, 4, zap.NewNop())

	results := p.ScoreBatch(context.Background(), docs(5), "job", nil)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.Failed {
			failures++
			if r.SourceFilename != "cv_3.pdf" {
				t.Fatalf("unexpected failed file: %s", r.SourceFilename)
			}
			if !strings.Contains(r.ErrorDetail, "corrupt") {
				t.Fatalf("expected extraction detail, got %q", r.ErrorDetail)
			}
		}
	}
	if failures != 1 {
		t.Fatalf("expected exactly 1 failure, got %d", failures)
	}
	if scorer.calls != 4 {
		t.Fatalf("expected 4 scoring calls (corrupt file skips scoring), got %d", scorer.calls)
	}
}

func TestScoreBatchScoringFailureYieldsFailedResult(t *testing.T) {
	scorer := &stubScorer{failFor: map[string]bool{"cv_2.pdf": true}}
	p := New(&stubExtractor{}, scorer, 2, zap.NewNop())

	results := p.ScoreBatch(context.Background(), docs(3), "job", nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for _, r := range results {
		if r.SourceFilename == "cv_2.pdf" {
			if !r.Failed || r.ErrorDetail == "" {
				t.Fatalf("expected failed result with detail, got %+v", r)
			}
		} else if r.Failed {
			t.Fatalf("failure leaked to %s", r.SourceFilename)
		}
	}
}

func TestScoreBatchProgressIsMonotonic(t *testing.T) {
	p := New(&stubExtractor{}, &stubScorer{}, 3, zap.NewNop())

	var progress []int
	p.ScoreBatch(context.Background(), docs(6), "job", func(done, total int) {
		if total != 6 {
			t.Fatalf("expected total 6, got %d", total)
		}
		progress = append(progress, done)
	})

	if len(progress) != 6 {
		t.Fatalf("expected 6 progress signals, got %d", len(progress))
	}
	for i, done := range progress {
		if done != i+1 {
			t.Fatalf("progress not monotonically increasing: %v", progress)
		}
	}
}

func TestScoreBatchRespectsWorkerBound(t *testing.T) {
	scorer := &stubScorer{}
	p := New(&stubExtractor{}, scorer, 2, zap.NewNop())

	p.ScoreBatch(context.Background(), docs(10), "job", nil)

	if max := scorer.maxInFlight.Load(); max > 2 {
		t.Fatalf("worker bound exceeded: saw %d concurrent scoring calls", max)
	}
}

func TestScoreBatchEmptyInput(t *testing.T) {
	p := New(&stubExtractor{}, &stubScorer{}, 4, zap.NewNop())

	results := p.ScoreBatch(context.Background(), nil, "job", func(done, total int) {
		t.Fatalf("no progress expected for empty batch")
	})
	if len(results) != 0 {
		t.Fatalf("expected empty result set, got %d", len(results))
	}
}
