package recommend

import "github.com/datadex-io/datadex/internal/domain/dataset"

// dedupe collapses candidates sharing a dataset ID down to one entry each,
// keeping the variant with the strictly greater similarity; ties keep the
// first seen. First-seen order of IDs is preserved so downstream ranking has
// a stable tie-break.
func dedupe(candidates []dataset.Candidate) []dataset.Candidate {
	if len(candidates) <= 1 {
		return candidates
	}

	byID := make(map[string]int, len(candidates))
	out := make([]dataset.Candidate, 0, len(candidates))

	for _, c := range candidates {
		idx, seen := byID[c.Record.ID]
		if !seen {
			byID[c.Record.ID] = len(out)
			out = append(out, c)
			continue
		}
		if c.Similarity > out[idx].Similarity {
			out[idx] = c
		}
	}

	return out
}
