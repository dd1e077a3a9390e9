package criticality

// Status is a verification outcome reported by an external authoritative
// source. The scorer does not interpret it.
type Status string

// Statuses commonly returned by verification services.
const (
	StatusUnverified Status = ""
	StatusVerified   Status = "verified"
	StatusMismatch   Status = "mismatch"
	StatusNotFound   Status = "not_found"
)

// VerificationQueue returns the entities whose score is at or above
// threshold, in the order of results (ScoreAll order is highest first).
func VerificationQueue(results []Result, threshold float64) []string {
	out := make([]string, 0)
	for _, r := range results {
		if r.Score >= threshold {
			out = append(out, r.Entity)
		}
	}
	return out
}

// ApplyVerification copies external statuses onto the matching results.
// Entities without a status keep theirs; scores are never changed.
func ApplyVerification(results []Result, statuses map[string]Status) []Result {
	out := make([]Result, len(results))
	copy(out, results)
	for i := range out {
		if st, ok := statuses[out[i].Entity]; ok {
			out[i].Verification = st
		}
	}
	return out
}
