package domain

import "time"

// Quota is the search endpoint's current call allowance.
type Quota struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// SearchPage is one page of search results.
type SearchPage struct {
	// Hits are the items actually returned. Only these are trusted.
	Hits []SearchHit

	// NextPage is the next page number, or 0 on the last page.
	NextPage int

	// Total is the result count reported by the service. Informational only.
	Total int
}
