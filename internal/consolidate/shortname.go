package consolidate

import (
	"strings"
	"unicode"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/extract"
)

// deriveShortName turns a canonical legal name into the short join key
// used across the record: corporate suffixes dropped, words title-cased.
// Short initialisms ("TD", "GM") stay uppercase.
func deriveShortName(canonical string) string {
	base := extract.TrimCorporateSuffix(canonical)
	words := strings.Fields(base)
	for i, word := range words {
		words[i] = shortNameWord(word)
	}
	return strings.Join(words, " ")
}

func shortNameWord(word string) string {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters <= 2 {
		return strings.ToUpper(word)
	}
	runes := []rune(strings.ToLower(word))
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(runes)
}
