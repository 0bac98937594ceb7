package model

import "sort"

// RunStats is a derived snapshot of an organization set. It is always
// recomputed wholesale via ComputeStats, never patched incrementally.
type RunStats struct {
	Total          int             `json:"total"`
	TierA          int             `json:"tier_a"`
	TierB          int             `json:"tier_b"`
	TierC          int             `json:"tier_c"`
	PhonesFound    int             `json:"phones_found"`
	EmailsFound    int             `json:"emails_found"`
	AddressesFound int             `json:"addresses_found"`
	WebsitesFound  int             `json:"websites_found"`
	ByType         map[OrgType]int `json:"by_type"`
	SourcesUsed    []string        `json:"sources_used"`
}

// ComputeStats derives run statistics from the full organization set and
// the set of sources that yielded at least one record.
func ComputeStats(orgs []Organization, sourcesUsed []string) RunStats {
	stats := RunStats{
		Total:  len(orgs),
		ByType: make(map[OrgType]int),
	}

	for _, o := range orgs {
		switch o.Tier {
		case TierA:
			stats.TierA++
		case TierB:
			stats.TierB++
		case TierC:
			stats.TierC++
		}
		if o.Phone != "" {
			stats.PhonesFound++
		}
		if o.Email != "" {
			stats.EmailsFound++
		}
		if o.Address != "" {
			stats.AddressesFound++
		}
		if o.WebsiteStatus == HasWebsite {
			stats.WebsitesFound++
		}
		stats.ByType[o.Type]++
	}

	stats.SourcesUsed = append(stats.SourcesUsed, sourcesUsed...)
	sort.Strings(stats.SourcesUsed)
	return stats
}

// CompletenessRate returns the share of Tier A records as a percentage.
func (s RunStats) CompletenessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.TierA) / float64(s.Total) * 100
}
