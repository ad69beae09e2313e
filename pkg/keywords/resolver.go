// Package keywords resolves the keyword list the trends comparison runs on.
package keywords

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/akvise/trends-checker/pkg/logger"
)

// MaxCompare is the number of terms Google Trends compares in one request.
const MaxCompare = 5

// Resolve produces the ordered keyword list from either a file or an inline
// comma-separated string. The file takes precedence when its path is
// non-empty. Lists longer than MaxCompare are truncated with a warning.
func Resolve(inline, filePath string) ([]string, error) {
	var kws []string
	if filePath != "" {
		loaded, err := loadFromFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read keywords file %q: %w", filePath, err)
		}
		kws = loaded
	} else {
		kws = SplitList(inline)
	}

	if len(kws) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}

	if len(kws) > MaxCompare {
		logger.WithField("dropped", len(kws)-MaxCompare).
			Warn(fmt.Sprintf("Google Trends compares up to %d terms at once; taking first %d", MaxCompare, MaxCompare))
		kws = kws[:MaxCompare]
	}

	return kws, nil
}

// SplitList splits a comma-separated string into trimmed non-empty entries,
// order preserved.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if cleaned := strings.TrimSpace(p); cleaned != "" {
			items = append(items, cleaned)
		}
	}
	return items
}

// loadFromFile reads one keyword per line. Blank lines and lines starting
// with '#' are skipped; a line may carry comma-separated sub-entries.
func loadFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var items []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, SplitList(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
