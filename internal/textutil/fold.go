package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns an NFC-normalized, case-folded form of text suitable for
// case-insensitive comparison.
func Fold(text string) string {
	// cases.Caser is stateful; build one per call.
	return cases.Fold().String(norm.NFC.String(text))
}

// ContainsFold reports whether keyword occurs in text ignoring case.
// An empty keyword never matches.
func ContainsFold(text, keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}
	return strings.Contains(Fold(text), Fold(keyword))
}

// MatchKeywords returns the keywords found in text, in keyword order.
func MatchKeywords(text string, keywords []string) []string {
	folded := Fold(text)
	var found []string
	for _, keyword := range keywords {
		k := strings.TrimSpace(keyword)
		if k == "" {
			continue
		}
		if strings.Contains(folded, Fold(k)) {
			found = append(found, keyword)
		}
	}
	return found
}

// RuneLen counts characters rather than bytes.
func RuneLen(text string) int {
	return utf8.RuneCountInString(text)
}

// Prefix returns at most n runes from the start of text.
func Prefix(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}

// Snippet returns the first n runes of text, with an ellipsis when text was cut.
func Snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	cut := Prefix(text, n)
	if cut != text && n > 0 {
		return cut + "..."
	}
	return cut
}
