package trends

import (
	"strings"
	"time"
)

// WorldwideCode is the sentinel geo meaning "no regional restriction".
const WorldwideCode = "WW"

// Point is one time bucket of an interest-over-time series. Values are
// aligned with RawSeries.Keywords. Partial marks a bucket the service has
// not finished counting yet.
type Point struct {
	Time    time.Time
	Values  []float64
	Partial bool
}

// RawSeries is the per-region interest-over-time table returned by the
// service, one column per keyword.
type RawSeries struct {
	Keywords []string
	Points   []Point
}

// Empty reports whether the series carries no data points.
func (s *RawSeries) Empty() bool {
	return s == nil || len(s.Points) == 0
}

// RelatedQuery is one rising related query with the service's relative
// growth value.
type RelatedQuery struct {
	Query string `json:"query"`
	Value int    `json:"value"`
}

// Payload describes one comparison request. Category is fixed at 0 (all
// categories) and Property at "youtube" (YouTube Search) by the checker.
type Payload struct {
	Keywords  []string
	Geo       string
	Timeframe string
	Category  int
	Property  string
}

// NormalizeGeo uppercases a region code and maps the worldwide sentinel to
// the empty geo filter the service expects.
func NormalizeGeo(code string) string {
	up := strings.ToUpper(strings.TrimSpace(code))
	if up == WorldwideCode {
		return ""
	}
	return up
}
