package models

// FallbackDataset is the curated default dashboard content, used whenever
// live extraction fails or is incomplete for a field. It is the sole source
// of truth when the site is unreachable.
type FallbackDataset struct {
	Mission    string
	CoreValues []string
	Stats      map[string]string
	Colleges   map[string]int
}

// fallbackMission is the canonical mission statement.
const fallbackMission = "To provide Christ-centered education that prepares people to honor God and serve others by developing their intellectual, spiritual, and professional lives."

// DefaultFallback returns the curated fallback dataset. Slices and maps are
// freshly allocated on every call so callers can never corrupt the canonical
// values.
func DefaultFallback() FallbackDataset {
	return FallbackDataset{
		Mission: fallbackMission,
		CoreValues: []string{
			"Christ-centered",
			"Transformational Education",
			"Whole Person Preparation",
			"Servant Leadership",
			"Global Engagement",
		},
		Stats: map[string]string{
			"Total Enrollment":       "3200",
			"Student-Faculty Ratio":  "14:1",
			"Undergraduate Programs": "50+",
			"Graduate Programs":      "18",
		},
		Colleges: map[string]int{
			"Bible & Ministry":             8,
			"Business":                     12,
			"Education":                    5,
			"Engineering":                  6,
			"Humanities & Social Sciences": 9,
			"Natural Sciences & Math":      7,
			"Communication & Arts":         5,
			"Music & Performing Arts":      4,
		},
	}
}
