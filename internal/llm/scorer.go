package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Domains the evaluator is allowed to categorize a candidate into.
var Domains = []string{
	"Light Industry",
	"Hospitality",
	"Customer Service",
	"Manufacturing",
	"Finance/Accounting",
	"Information Technology",
}

// ResumeEvaluation is the structured outcome of scoring one résumé
// against a job description.
type ResumeEvaluation struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Score   int    `json:"score"`
	Domain  string `json:"domain"`
	Comment string `json:"comment"`
}

type generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Scorer evaluates résumés with the HR recruiter prompt.
type Scorer struct {
	generator generator
	logger    *zap.Logger
}

func NewScorer(g generator, logger *zap.Logger) *Scorer {
	return &Scorer{
		generator: g,
		logger:    logger,
	}
}

const scoringSystemPrompt = `You are an AI HR Recruiter and Resume Evaluator. Your task is to analyze a resume against a job description and return a structured JSON output.

== INSTRUCTIONS ==
1.  **Extract Candidate Details**: From the resume text, extract the candidate's full name and email address. If they are not available, use "N/A".
2.  **Score the Resume**: Score the candidate out of 100 based on the following criteria and weights:
    - Domain Experience: 30%
    - Technical Skills Match: 25%
    - Summary/Keyword Density: 15%
    - Job Role Match: 15%
    - Education Relevance: 15%
3.  **Categorize Domain**: Identify the most relevant job domain from this list: ["Light Industry", "Hospitality", "Customer Service", "Manufacturing", "Finance/Accounting", "Information Technology"].
4.  **Provide a Summary**: Write a concise, one-line comment summarizing the candidate's fit for the role.

== RESPONSE FORMAT ==
Provide your response as a single, valid JSON object with the following keys:
- "name": (string) Candidate's full name.
- "email": (string) Candidate's email address.
- "score": (integer) The final score from 0 to 100.
- "domain": (string) The matched job domain.
- "comment": (string) A one-line summary.`

// ScoreResume evaluates a résumé against the job description and returns
// the structured evaluation. A malformed model response is an error; the
// raw text is carried in the error for the operator.
func (s *Scorer) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*ResumeEvaluation, error) {
	userPrompt := fmt.Sprintf("Resume:\n%s\n\nJob Description:\n%s", resumeText, jobDescription)

	raw, err := s.generator.GenerateJSON(ctx, scoringSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	eval, err := parseEvaluation(raw)
	if err != nil {
		s.logger.Warn("malformed evaluation response", zap.Error(err))
		return nil, err
	}

	if eval.Name == "" {
		eval.Name = "N/A"
	}
	if eval.Email == "" {
		eval.Email = "N/A"
	}
	if eval.Score < 0 {
		eval.Score = 0
	}
	if eval.Score > 100 {
		eval.Score = 100
	}

	return eval, nil
}

func parseEvaluation(raw string) (*ResumeEvaluation, error) {
	cleaned := ExtractJSON(raw)

	// Tolerate a fractional score from the model.
	var data struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Score   float64 `json:"score"`
		Domain  string  `json:"domain"`
		Comment string  `json:"comment"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse evaluation response %q: %w", raw, err)
	}

	return &ResumeEvaluation{
		Name:    strings.TrimSpace(data.Name),
		Email:   strings.TrimSpace(data.Email),
		Score:   int(data.Score),
		Domain:  strings.TrimSpace(data.Domain),
		Comment: strings.TrimSpace(data.Comment),
	}, nil
}

// ExtractJSON strips markdown code fences the model sometimes wraps
// around its JSON payload.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
