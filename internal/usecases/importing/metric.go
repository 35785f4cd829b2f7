package importing

import (
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/content-ops-api/pkg/utils"
)

func isPlaceholder(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "-", "--":
		return true
	}
	return false
}

// ParseCount converte um contador obrigatório; placeholders e falhas viram 0.
// Separador de milhar não é tratado: "12,000" resulta em 0.
func ParseCount(raw string) int {
	if isPlaceholder(raw) {
		return 0
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}

	return n
}

// ParseOptionalCount distingue "não informado" (nil) de "informado como zero"
func ParseOptionalCount(raw string) *int {
	if isPlaceholder(raw) {
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	if n < 0 {
		n = 0
	}

	return &n
}

// ParseRate aceita "85.5", "85.5%" e "0.855"
func ParseRate(raw string) *float64 {
	if isPlaceholder(raw) {
		return nil
	}

	value := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 {
		return nil
	}

	return &f
}

// ParsePublishTime devolve (data, data-hora). Valores ilegíveis deixam ambos nil.
func ParsePublishTime(raw string) (*time.Time, *time.Time) {
	if isPlaceholder(raw) {
		return nil, nil
	}

	t, err := utils.ParseFlexibleTime(raw)
	if err != nil {
		return nil, nil
	}

	day := utils.StartOfDay(t)
	return &day, &t
}
