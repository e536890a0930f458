package transaction

import (
	"fmt"
	"strings"
	"time"
)

// layouts aceitos para datas vindas de formulário ou planilha, em ordem de tentativa.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate interpreta s num dos layouts aceitos. Datas sem fuso são lidas em loc
// (dia civil do usuário) e o resultado é devolvido em UTC.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida %q: use YYYY-MM-DD", s)
}
