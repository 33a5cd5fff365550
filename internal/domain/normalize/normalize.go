// Package normalize makes free-text matching accent- and case-insensitive.
package normalize

import "strings"

// Galician and Spanish text only carries acute accents on vowels. The
// letter ñ/Ñ is a distinct letter, not an accented n, and is preserved.
var accents = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U",
)

// Apply strips accented vowels and lower-cases the text. It is pure and
// idempotent: Apply(Apply(s)) == Apply(s).
func Apply(s string) string {
	return strings.ToLower(accents.Replace(s))
}
