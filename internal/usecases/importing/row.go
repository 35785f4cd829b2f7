package importing

import "strings"

// ParseLine divide uma linha pelo delimitador respeitando trechos entre aspas.
// As aspas apenas alternam o estado e são descartadas; "" não vira uma aspa literal.
func ParseLine(line string, delim rune) []string {
	fields := make([]string, 0, 16)

	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// field tolera linhas curtas e índices não resolvidos
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optionalField(row []string, idx int) *string {
	v := field(row, idx)
	if v == "" {
		return nil
	}
	return &v
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
