package ats

import "sort"

// DefaultThreshold is the minimum score for a candidate to be shortlisted.
const DefaultThreshold = 60

// Shortlist is a derived, read-only view over a batch of results:
// successful candidates at or above the threshold, sorted by score
// descending, grouped by domain in first-seen order.
type Shortlist struct {
	Threshold  int               `json:"threshold"`
	Candidates []CandidateResult `json:"candidates"`
	Domains    []DomainGroup     `json:"domains"`
}

// DomainGroup holds the shortlisted candidates of one job domain.
type DomainGroup struct {
	Domain     string            `json:"domain"`
	Candidates []CandidateResult `json:"candidates"`
}

// Aggregate filters, sorts and groups a batch of results. Pure function:
// the input slice is not modified. The sort is stable so equal scores keep
// their filter-stage order.
func Aggregate(results []CandidateResult, threshold int) *Shortlist {
	filtered := make([]CandidateResult, 0, len(results))
	for _, r := range results {
		if r.Failed || r.Score < threshold {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})

	var groups []DomainGroup
	index := make(map[string]int)
	for _, r := range filtered {
		i, ok := index[r.Domain]
		if !ok {
			i = len(groups)
			index[r.Domain] = i
			groups = append(groups, DomainGroup{Domain: r.Domain})
		}
		groups[i].Candidates = append(groups[i].Candidates, r)
	}

	return &Shortlist{
		Threshold:  threshold,
		Candidates: filtered,
		Domains:    groups,
	}
}
