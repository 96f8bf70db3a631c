package media

import (
	"fmt"
	"strings"
	"time"
)

// TempTokenPrefix marks an order token that refers to a file uploaded in the
// current request rather than to an existing public id.
const TempTokenPrefix = "new-"

// IsTempToken reports whether token refers to a new upload.
func IsTempToken(token string) bool {
	return strings.HasPrefix(token, TempTokenPrefix)
}

// tokenStrategy proposes a temp token for the upload at index i.
type tokenStrategy func(i int) (string, bool)

// ResolveTempTokens assigns a temp token to each of n uploads. For every upload
// the first strategy that yields an unclaimed token wins:
//
//  1. the i-th distinct new-* marker of order, when the markers match the uploads 1:1;
//  2. tempIDs[i];
//  3. the i-th distinct new-* marker of order, unless some temp id names it;
//  4. a synthesized new-<unixms>-<i>.
//
// Step 3 keeps a file the caller placed in order when there are fewer markers
// than uploads and no temp id for it.
func ResolveTempTokens(order, tempIDs []string, n int, now time.Time) []string {
	markers := distinctMarkers(order)
	stamp := now.UnixMilli()

	named := make(map[string]struct{}, len(tempIDs))
	for _, id := range tempIDs {
		if id = strings.TrimSpace(id); id != "" {
			named[id] = struct{}{}
		}
	}

	strategies := []tokenStrategy{
		func(i int) (string, bool) {
			if len(markers) != n {
				return "", false
			}
			return markers[i], true
		},
		func(i int) (string, bool) {
			if i >= len(tempIDs) {
				return "", false
			}
			tok := strings.TrimSpace(tempIDs[i])
			return tok, tok != ""
		},
		func(i int) (string, bool) {
			if i >= len(markers) {
				return "", false
			}
			if _, ok := named[markers[i]]; ok {
				return "", false
			}
			return markers[i], true
		},
		func(i int) (string, bool) {
			return fmt.Sprintf("%s%d-%d", TempTokenPrefix, stamp, i), true
		},
	}

	claimed := make(map[string]struct{}, n)
	tokens := make([]string, n)
	for i := 0; i < n; i++ {
		for _, strategy := range strategies {
			tok, ok := strategy(i)
			if !ok {
				continue
			}
			if _, taken := claimed[tok]; taken {
				continue
			}
			tokens[i] = tok
			claimed[tok] = struct{}{}
			break
		}
		if tokens[i] == "" {
			// Only reachable when a caller-supplied id collides with a synthesized one.
			tokens[i] = fmt.Sprintf("%s%d-%d-%d", TempTokenPrefix, stamp, i, len(claimed))
			claimed[tokens[i]] = struct{}{}
		}
	}
	return tokens
}

func distinctMarkers(order []string) []string {
	seen := make(map[string]struct{})
	var markers []string
	for _, tok := range order {
		if !IsTempToken(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		markers = append(markers, tok)
	}
	return markers
}
