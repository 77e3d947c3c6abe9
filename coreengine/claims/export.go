package claims

import (
	"encoding/csv"
	"fmt"
	"io"
)

// csvHeader is the column layout the export consumers depend on.
var csvHeader = []string{"Claim ID", "Claimant", "Vehicle", "FNOL Date", "Status", "SLA Risk"}

// ExportCSV serializes the given claims to a comma-separated table.
// The header is fixed: Claim ID, Claimant, Vehicle, FNOL Date, Status, SLA Risk.
func ExportCSV(w io.Writer, list []Claim) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range list {
		row := []string{c.ID, c.ClaimantName, c.Vehicle, c.FNOLDate, string(c.Status), string(c.SLARisk)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
