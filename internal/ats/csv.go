package ats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV exports the shortlist in the id,name,email,score,domain layout
// used by the download endpoint.
func WriteCSV(w io.Writer, shortlist *Shortlist) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"id", "name", "email", "score", "domain"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range shortlist.Candidates {
		record := []string{c.CandidateID, c.Name, c.Email, strconv.Itoa(c.Score), c.Domain}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record for %s: %w", c.CandidateID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
