// Package textutil normaliza textos livres (tags e categorias de receitas)
// para que buscas não dependam de acentos ou maiúsculas.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.BrazilianPortuguese)

// Fold devolve s em minúsculas, sem acentos e sem espaços nas pontas:
// "  Café da Manhã " vira "cafe da manha".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower.String(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.Join(strings.Fields(folded), " ")
}

// FoldAll aplica Fold em cada item, descartando vazios e duplicados
func FoldAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		f := Fold(v)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
