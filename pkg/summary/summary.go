// Package summary reduces raw interest-over-time series into per-region
// mean scores.
package summary

import (
	"errors"

	"github.com/akvise/trends-checker/pkg/trends"
)

// ErrNoData marks a region whose series came back empty. Callers skip the
// region; the run itself continues.
var ErrNoData = errors.New("no data for region")

// Row is the aggregated result for one region: the mean interest score per
// keyword over the full timeframe, on the service's 0-100 scale.
type Row struct {
	Geo   string             `json:"geo"`
	Means map[string]float64 `json:"means"`
}

// Aggregate computes the arithmetic mean of every keyword column. The
// partial-period flag is dropped; partial buckets still count. Keywords
// missing from the series report 0.
func Aggregate(label string, series *trends.RawSeries) (Row, error) {
	if series.Empty() {
		return Row{}, ErrNoData
	}

	sums := make([]float64, len(series.Keywords))
	for _, point := range series.Points {
		for i := range sums {
			if i < len(point.Values) {
				sums[i] += point.Values[i]
			}
		}
	}

	means := make(map[string]float64, len(series.Keywords))
	n := float64(len(series.Points))
	for i, kw := range series.Keywords {
		means[kw] = sums[i] / n
	}
	return Row{Geo: label, Means: means}, nil
}
