// Package strings holds small helpers for tag-like string sets.
package strings

import (
	"strings"
)

// NormalizeTags trims each tag and drops empties and exact duplicates while
// preserving first-seen order. Matching stays case-sensitive.
//
//	NormalizeTags([]string{" Barbell", "Dumbbells", "Barbell", ""})
//	// []string{"Barbell", "Dumbbells"}
func NormalizeTags(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// Contains reports whether tag is one of tags.
func Contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every element of want is present in have.
// An empty want is trivially satisfied.
func ContainsAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}
