package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Meta descreve o cabeçalho dos relatórios.
type Meta struct {
	Firm        string
	Title       string
	GeneratedAt time.Time
}

// FileName monta "relatorio_<titulo>_<unixmillis>.<ext>".
func FileName(title, ext string, at time.Time) string {
	return fmt.Sprintf("relatorio_%s_%d.%s", slug(title), at.UnixMilli(), ext)
}

func slug(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.TrimSuffix(b.String(), "_")
	if out == "" {
		return "geral"
	}
	return out
}
