package claims

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// ImportJSON parses a JSON array of claim-like objects for batch creation.
//
// Records are normalized rather than strictly validated: a missing id is
// generated, a missing status defaults to New, a missing SLA risk defaults
// to Medium. A record is only rejected for negative amounts or an unknown
// status/risk that was explicitly supplied. Malformed JSON aborts the whole
// batch with no partial effect.
func ImportJSON(r io.Reader) ([]Claim, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import payload: %w", err)
	}

	var records []Claim
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse import payload: %w", err)
	}

	out := make([]Claim, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			rec.ID = generatedClaimID()
		}
		if rec.Status == "" {
			rec.Status = StatusNew
		}
		if rec.SLARisk == "" {
			rec.SLARisk = SLAMedium
		}
		if rec.EstimatedAmount == "" {
			rec.EstimatedAmount = "0"
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("import record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"` // duplicate ids already in the repository
}

// ImportInto parses and inserts a JSON batch into the repository. Duplicate
// identifiers are skipped and reported rather than failing the batch.
func ImportInto(repo *Repository, r io.Reader) (ImportResult, error) {
	var result ImportResult

	records, err := ImportJSON(r)
	if err != nil {
		return result, err
	}

	for _, rec := range records {
		if err := repo.Add(rec); err != nil {
			result.Skipped = append(result.Skipped, rec.ID)
			continue
		}
		result.Added = append(result.Added, rec.ID)
	}
	return result, nil
}

func generatedClaimID() string {
	return "AC-IMP-" + uuid.New().String()[:8]
}
