package report

import (
	"fmt"
	"os"
	"strings"
)

// LoadBatch reads newline-delimited entity names from listPath (optional)
// and merges them with single (optional), preserving file order with the
// single name appended last. Blank lines are ignored and duplicate names
// are dropped, first occurrence wins, so a repeated name cannot produce
// colliding sheet names.
func LoadBatch(listPath, single string) ([]string, error) {
	names := make([]string, 0, 8)
	seen := make(map[string]struct{})

	appendName := func(value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if _, exists := seen[value]; exists {
			return
		}
		seen[value] = struct{}{}
		names = append(names, value)
	}

	if strings.TrimSpace(listPath) != "" {
		data, err := os.ReadFile(listPath)
		if err != nil {
			return nil, fmt.Errorf("read batch list %s: %w", listPath, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			appendName(line)
		}
	}

	appendName(single)
	return names, nil
}
