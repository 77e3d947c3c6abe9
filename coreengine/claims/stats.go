package claims

// Stats summarizes the working set for the dashboard.
type Stats struct {
	Total        int             `json:"total"`
	ByStatus     map[Status]int  `json:"byStatus"`
	BySLARisk    map[SLARisk]int `json:"bySlaRisk"`
	HighPriority int             `json:"highPriority"` // new claims at SLA High
}

// ComputeStats tallies claims by status and SLA risk. Every known status and
// risk tier appears in the maps even when zero.
func ComputeStats(list []Claim) Stats {
	stats := Stats{
		Total:     len(list),
		ByStatus:  make(map[Status]int, 5),
		BySLARisk: make(map[SLARisk]int, 3),
	}
	for _, s := range Statuses() {
		stats.ByStatus[s] = 0
	}
	for _, r := range []SLARisk{SLALow, SLAMedium, SLAHigh} {
		stats.BySLARisk[r] = 0
	}

	for _, c := range list {
		stats.ByStatus[c.Status]++
		stats.BySLARisk[c.SLARisk]++
		if c.Status == StatusNew && c.SLARisk == SLAHigh {
			stats.HighPriority++
		}
	}
	return stats
}
