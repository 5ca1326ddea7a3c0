package domain

import "strings"

// Severity buckets stored at rest. The richer clinical severity enum is
// collapsed into these values so raw-storage access never learns more than
// a coarse category.
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// SeverityMapper coarsens raw severity values into at-rest buckets.
// Lookup is case-insensitive; unknown input maps to the empty bucket.
type SeverityMapper struct {
	buckets map[string]string
}

// ParseSeverityMapper parses a mapping spec of the form
// "minimal:LOW,mild:LOW,moderate:MEDIUM,severe:HIGH,career_ending:HIGH".
// Malformed pairs are skipped.
func ParseSeverityMapper(spec string) *SeverityMapper {
	buckets := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		raw, bucket, found := strings.Cut(strings.TrimSpace(pair), ":")
		if !found {
			continue
		}
		raw = strings.ToLower(strings.TrimSpace(raw))
		bucket = strings.ToUpper(strings.TrimSpace(bucket))
		if raw == "" || bucket == "" {
			continue
		}
		buckets[raw] = bucket
	}

	return &SeverityMapper{buckets: buckets}
}

// Bucket returns the coarse bucket for a raw severity value, or "" when the
// value is empty or unmapped.
func (m *SeverityMapper) Bucket(raw string) string {
	if raw == "" {
		return ""
	}
	return m.buckets[strings.ToLower(strings.TrimSpace(raw))]
}
