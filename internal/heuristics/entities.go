package heuristics

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var capitalizedWord = regexp.MustCompile(`\p{Lu}\p{Ll}+`)

// EntityScanner collects capitalized words inside comments. A capital that
// opens the comment or follows ". " is a sentence start and is skipped; the
// rest are likely names or places the reviewer expected as concepts.
type EntityScanner struct{}

func (s *EntityScanner) Name() string { return "entities" }

func (s *EntityScanner) Scan(in Input) Observation {
	obs := Observation{Description: "capitalized words in comments (possible missing named entities)"}
	hits := newHitCounter()
	for _, f := range in.Findings {
		if f.Comment == "" {
			continue
		}
		obs.Considered++
		entities := Entities(f.Comment)
		if len(entities) == 0 {
			continue
		}
		obs.Matched++
		for _, entity := range entities {
			hits.add(entity)
		}
	}
	obs.Hits = hits.result()
	return obs
}

// Entities returns the capitalized words of comment that are not sentence starts.
func Entities(comment string) []string {
	var out []string
	for _, loc := range capitalizedWord.FindAllStringIndex(comment, -1) {
		start, end := loc[0], loc[1]
		if start == 0 || strings.HasSuffix(comment[:start], ". ") {
			continue
		}
		if r, _ := utf8.DecodeLastRuneInString(comment[:start]); isWordRune(r) {
			continue
		}
		if end < len(comment) {
			if r, _ := utf8.DecodeRuneInString(comment[end:]); isWordRune(r) {
				continue
			}
		}
		out = append(out, comment[start:end])
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
