// Package ident derives track prefixes and performs project-wide
// identifier renames.
package ident

import "strings"

// DerivePrefix picks an uppercase prefix for a track id: the first three
// characters of the last hyphen segment. On collision it prepends
// characters drawn left to right from the earlier segments, one more each
// attempt, re-deriving a three character candidate; when the pool is
// exhausted it falls back to the first three characters of the whole id
// with hyphens removed.
func DerivePrefix(trackID string, taken map[string]bool) string {
	segments := strings.Split(trackID, "-")
	last := segments[len(segments)-1]

	candidate := take3Upper(last)
	if !taken[candidate] {
		return candidate
	}

	pool := []rune(strings.Join(segments[:len(segments)-1], ""))
	for i := 1; i <= len(pool); i++ {
		candidate = take3Upper(string(pool[:i]) + last)
		if !taken[candidate] {
			return candidate
		}
	}

	return take3Upper(strings.ReplaceAll(trackID, "-", ""))
}

func take3Upper(s string) string {
	runes := []rune(s)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}
