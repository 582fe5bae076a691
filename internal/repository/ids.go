package repository

import (
	"strconv"
	"strings"
)

// nextSuffix returns max(existing numeric suffixes)+1 for IDs shaped
// {prefix}{n}. Deriving the counter from the maximum surviving suffix rather
// than the list length keeps fresh IDs from colliding with survivors after a
// deletion.
func nextSuffix(ids []string, prefix string) int {
	max := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}
