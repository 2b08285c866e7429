package phrase

import "strings"

// stripped is the set of characters removed from phrase names so that
// "omg, adam savage" and "omg adam savage?" address the same entry.
const stripped = "?.,/#!$%^&*;:{}=_`~()-"

// CleanName canonicalizes a raw phrase name: trim, drop punctuation,
// lowercase. It is idempotent and never fails; whitespace-only input
// cleans to the empty string.
func CleanName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimSpace(raw) {
		if strings.ContainsRune(stripped, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}
