// Define an interface for post scrapers
// Aggregate scraped posts into the bounded result

package scraper

import (
	"context"

	"go-linkedin-doppelganger/internal/dedup"
)

// Scraper defines the interface that a platform post scraper must implement
type Scraper interface {
	//Scrape returns the post texts of the configured profile, in page order
	Scrape(ctx context.Context) ([]string, error)

	//Name is the platform name (LinkedIn, ...)
	Name() string
}

// Aggregate drops repeated post texts (first occurrence wins) and keeps at
// most max posts in encounter order. max < 1 yields an empty slice.
func Aggregate(posts []string, max int) []string {
	if max < 1 {
		return []string{}
	}
	unique := dedup.Unique(posts)
	if len(unique) > max {
		unique = unique[:max]
	}
	return unique
}
