package utils

import "strings"

var accentFolder = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U", "Ñ", "N",
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

// FoldAccents replaces Spanish accented vowels and Ñ with their plain letters.
func FoldAccents(s string) string {
	return accentFolder.Replace(s)
}

// FoldUpper trims, folds accents and uppercases s. Used to compare loosely
// written headers and team names.
func FoldUpper(s string) string {
	return strings.ToUpper(FoldAccents(strings.TrimSpace(s)))
}
