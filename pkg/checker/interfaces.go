package checker

import (
	"context"

	"github.com/akvise/trends-checker/pkg/trends"
)

// Fetcher performs one fetch attempt for a region. The returned
// RelatedSource is bound to the session of that attempt and serves
// follow-up related-query requests.
type Fetcher interface {
	Fetch(ctx context.Context, geo string) (*trends.RawSeries, RelatedSource, error)
}

// RelatedSource serves rising related queries for the keywords of a
// completed fetch.
type RelatedSource interface {
	RisingQueries(ctx context.Context) (map[string][]trends.RelatedQuery, error)
}
