package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/akvise/trends-checker/pkg/checker"
)

// WriteCSV saves the wide-form summary table. The caller treats a failure
// as a warning; the run itself still succeeds.
func WriteCSV(path string, result *checker.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(append([]string{"geo"}, result.Keywords...)); err != nil {
		return err
	}
	for _, row := range result.Rows {
		record := []string{row.Geo}
		for _, kw := range result.Keywords {
			record = append(record, strconv.FormatFloat(row.Means[kw], 'f', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
