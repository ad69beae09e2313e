package checker

import (
	"context"

	"github.com/akvise/trends-checker/pkg/trends"
)

// trendsFetcher builds a fresh trends client for every attempt, so no
// session state leaks across retries. Category 0 and the YouTube Search
// property are fixed here: this tool probes video search interest only.
type trendsFetcher struct {
	keywords  []string
	timeframe string
	opts      trends.Options
}

// NewTrendsFetcher wires the real Google Trends client behind the Fetcher
// interface.
func NewTrendsFetcher(keywords []string, timeframe string, opts trends.Options) Fetcher {
	return &trendsFetcher{
		keywords:  keywords,
		timeframe: timeframe,
		opts:      opts,
	}
}

func (f *trendsFetcher) Fetch(ctx context.Context, geo string) (*trends.RawSeries, RelatedSource, error) {
	client := trends.NewClient(f.opts)
	series, err := client.InterestOverTime(ctx, trends.Payload{
		Keywords:  f.keywords,
		Geo:       geo,
		Timeframe: f.timeframe,
		Category:  0,
		Property:  "youtube",
	})
	if err != nil {
		return nil, nil, err
	}
	return series, client, nil
}
