// Package checker drives the sequential per-region probe loop: fetch with
// retry, aggregate, optionally collect rising related queries.
package checker

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/akvise/trends-checker/pkg/logger"
	"github.com/akvise/trends-checker/pkg/summary"
	"github.com/akvise/trends-checker/pkg/trends"
)

// ErrNoData reports that no region produced any summary data.
var ErrNoData = errors.New("no summary data produced")

// Config holds the immutable parameters of one run.
type Config struct {
	Keywords []string
	Geos     []string // raw region codes, input order preserved
	Sleep    float64  // inter-region delay base, seconds
	Policy   RetryPolicy
	Related  bool
}

// RegionRelated carries the rising related queries collected for one
// region, keyed by keyword. Keywords without rising entries map to an
// empty slice.
type RegionRelated struct {
	Geo     string                           `json:"geo"`
	Queries map[string][]trends.RelatedQuery `json:"queries"`
}

// Result is the outcome of a full run over all regions.
type Result struct {
	Keywords []string        `json:"keywords"`
	Rows     []summary.Row   `json:"rows"`
	Related  []RegionRelated `json:"related,omitempty"`
}

// Checker visits regions strictly one at a time, in input order.
type Checker struct {
	cfg     Config
	policy  RetryPolicy
	fetcher Fetcher
	log     *logger.Logger

	// Injected for deterministic tests.
	sleep     func(ctx context.Context, d time.Duration) error
	randFloat func() float64
}

// New builds a Checker over the given fetcher.
func New(cfg Config, fetcher Fetcher) *Checker {
	return &Checker{
		cfg:       cfg,
		policy:    cfg.Policy,
		fetcher:   fetcher,
		log:       logger.GetLogger().WithField("component", "checker"),
		sleep:     sleepContext,
		randFloat: rand.Float64,
	}
}

// Run executes the loop. A region that fails fetch after the retry budget
// or comes back empty is skipped; only context cancellation aborts the
// run. When every region is skipped the Result carries zero rows and
// ErrNoData is returned.
func (c *Checker) Run(ctx context.Context) (*Result, error) {
	result := &Result{Keywords: c.cfg.Keywords}

	for _, geoIn := range c.cfg.Geos {
		geo := trends.NormalizeGeo(geoIn)
		label := regionLabel(geo)

		series, related, err := c.fetchWithRetry(ctx, geo)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			c.log.WithError(err).WithField("geo", label).Error("region failed; skipping")
			if err := c.interRegionSleep(ctx); err != nil {
				return result, err
			}
			continue
		}

		row, err := summary.Aggregate(label, series)
		if err != nil {
			c.log.WithField("geo", label).Warn("no data for region")
			continue
		}
		result.Rows = append(result.Rows, row)

		if c.cfg.Related {
			result.Related = append(result.Related, c.collectRelated(ctx, label, related))
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
		}

		if err := c.interRegionSleep(ctx); err != nil {
			return result, err
		}
	}

	if len(result.Rows) == 0 {
		return result, ErrNoData
	}
	return result, nil
}

// collectRelated gathers rising queries best-effort: a failure logs a
// warning and yields empty listings for every keyword.
func (c *Checker) collectRelated(ctx context.Context, label string, source RelatedSource) RegionRelated {
	queries, err := source.RisingQueries(ctx)
	if err != nil && ctx.Err() == nil {
		c.log.WithError(err).WithField("geo", label).Warn("related queries failed")
		queries = nil
	}
	if queries == nil {
		queries = make(map[string][]trends.RelatedQuery)
	}
	for _, kw := range c.cfg.Keywords {
		if _, ok := queries[kw]; !ok {
			queries[kw] = nil
		}
	}
	return RegionRelated{Geo: label, Queries: queries}
}

// interRegionSleep applies the throttling delay between regions:
// sleep + uniform(0, jitter).
func (c *Checker) interRegionSleep(ctx context.Context) error {
	delay := c.cfg.Sleep
	if c.policy.Jitter > 0 {
		delay += c.randFloat() * c.policy.Jitter
	}
	if delay <= 0 {
		return ctx.Err()
	}
	return c.sleep(ctx, time.Duration(delay*float64(time.Second)))
}

func regionLabel(geo string) string {
	if strings.TrimSpace(geo) == "" {
		return trends.WorldwideCode
	}
	return strings.ToUpper(geo)
}
