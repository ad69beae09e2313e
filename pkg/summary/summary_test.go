package summary

import (
	"errors"
	"testing"
	"time"

	"github.com/akvise/trends-checker/pkg/trends"
)

func TestAggregate_Means(t *testing.T) {
	series := &trends.RawSeries{
		Keywords: []string{"A", "B"},
		Points: []trends.Point{
			{Time: time.Unix(1, 0), Values: []float64{10, 0}},
			{Time: time.Unix(2, 0), Values: []float64{20, 0}},
			{Time: time.Unix(3, 0), Values: []float64{30, 0}, Partial: true},
		},
	}

	row, err := Aggregate("US", series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if row.Geo != "US" {
		t.Errorf("expected geo US, got %q", row.Geo)
	}
	if row.Means["A"] != 20.0 {
		t.Errorf("expected mean 20.0 for A, got %v", row.Means["A"])
	}
	if row.Means["B"] != 0.0 {
		t.Errorf("expected mean 0.0 for B, got %v", row.Means["B"])
	}
	// The partial-period flag never becomes a keyword column.
	if len(row.Means) != 2 {
		t.Errorf("expected exactly 2 keyword entries, got %d", len(row.Means))
	}
}

func TestAggregate_PartialBucketsStillCount(t *testing.T) {
	series := &trends.RawSeries{
		Keywords: []string{"A"},
		Points: []trends.Point{
			{Values: []float64{0}},
			{Values: []float64{100}, Partial: true},
		},
	}

	row, err := Aggregate("WW", series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Means["A"] != 50.0 {
		t.Errorf("expected mean 50.0 including partial bucket, got %v", row.Means["A"])
	}
}

func TestAggregate_Empty(t *testing.T) {
	_, err := Aggregate("US", &trends.RawSeries{Keywords: []string{"A"}})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}

	_, err = Aggregate("US", nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for nil series, got %v", err)
	}
}

func TestAggregate_ShortValueRows(t *testing.T) {
	series := &trends.RawSeries{
		Keywords: []string{"A", "B"},
		Points: []trends.Point{
			{Values: []float64{10}},
			{Values: []float64{30, 40}},
		},
	}

	row, err := Aggregate("ES", series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Means["A"] != 20.0 {
		t.Errorf("expected mean 20.0 for A, got %v", row.Means["A"])
	}
	if row.Means["B"] != 20.0 {
		t.Errorf("expected missing values to count as 0, got %v", row.Means["B"])
	}
}
