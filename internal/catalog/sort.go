package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SortKey returns the comparison key for a record name.
//
// Full Unicode upper-casing is used (for example "ß" becomes "SS") and the keys are
// compared byte-wise, not with locale collation. Byte order of UTF-8 is code point
// order, so a character above U+FFFF sorts after one in U+E000..U+FFFF. This
// differs from UTF-16 code-unit order, where the surrogate pair sorts first.
func SortKey(name string) string {
	// cases.Caser is stateful, so a fresh one is built per call.
	return cases.Upper(language.Und).String(name)
}

// CompareNames orders two names by their upper-cased keys.
func CompareNames(a, b string) int {
	return strings.Compare(SortKey(a), SortKey(b))
}

// SortByName returns a copy of records ordered by upper-cased name, ascending.
// Records with equal keys keep their source order. The input slice is not modified.
func SortByName(records []ServiceRecord) []ServiceRecord {
	keys := make(map[string]string, len(records))
	for _, r := range records {
		if _, ok := keys[r.Name]; !ok {
			keys[r.Name] = SortKey(r.Name)
		}
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b ServiceRecord) int {
		return strings.Compare(keys[a.Name], keys[b.Name])
	})
	return sorted
}

// IsSortedByName reports whether records are already in SortByName order.
func IsSortedByName(records []ServiceRecord) bool {
	return slices.IsSortedFunc(records, func(a, b ServiceRecord) int {
		return CompareNames(a.Name, b.Name)
	})
}
