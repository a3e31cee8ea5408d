package service

import (
	"regexp"
	"strings"
)

var twoLetterToken = regexp.MustCompile(`^[A-Za-z]{2}$`)

// NormalizeLocation derives a cleaned (city, state) pair from raw city text
// that may carry an embedded state, plus a possibly-absent explicit state.
//
// Rules apply in order, first match wins:
//  1. City contains a comma — city becomes the portion before the first
//     comma; when state was previously absent, the remainder becomes the
//     state fragment ("Austin, TX" → TX, "Austin, Texas" → Texas).
//  2. City's last whitespace-separated token is exactly two letters — state
//     becomes that token when previously absent, city becomes the remaining
//     tokens.
//  3. No change.
//
// The returned state is a raw fragment; the caller applies
// domain.NormalizeState at final assignment, which upper-cases and truncates
// to 2 characters. "Austin, Texas" therefore ends up as state "TE" — an
// intentional fidelity limit, never silently corrected to a real code.
func NormalizeLocation(city, state string) (string, string) {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	if i := strings.Index(city, ","); i >= 0 {
		if rest := strings.TrimSpace(city[i+1:]); rest != "" && state == "" {
			state = rest
		}
		return strings.TrimSpace(city[:i]), state
	}

	tokens := strings.Fields(city)
	if len(tokens) >= 2 && twoLetterToken.MatchString(tokens[len(tokens)-1]) {
		if state == "" {
			state = tokens[len(tokens)-1]
		}
		return strings.Join(tokens[:len(tokens)-1], " "), state
	}

	return city, state
}
