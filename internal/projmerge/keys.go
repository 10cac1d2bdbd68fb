package projmerge

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ItemKey returns the merge key for an Include value. Keys are lower-cased
// rune by rune, so "Foo\Bar.item" and "foo\BAR.ITEM" collide while
// "Straße.item" and "Strasse.item" stay distinct.
func ItemKey(include string) string {
	return cases.Lower(language.Und).String(include)
}

// CompareKeys orders item keys ascending, ordinal on the lower-cased form.
func CompareKeys(a, b string) int {
	return strings.Compare(a, b)
}
