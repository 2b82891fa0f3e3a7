package utils

import (
	"strings"
	"unicode"
)

// remove qualquer coisa que não seja dígito
func SanitizeCNPJ(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// MatchCNPJ compara só os dígitos, então "11.222" encontra "11222333000181".
// O CNPJ é livre (não é validado), e um termo sem dígitos nunca casa.
func MatchCNPJ(cnpj, term string) bool {
	digits := SanitizeCNPJ(term)
	if digits == "" {
		return false
	}
	return strings.Contains(SanitizeCNPJ(cnpj), digits)
}
