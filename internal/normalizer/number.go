package normalizer

import (
	"math"
	"strconv"
	"strings"
)

var numberReplacer = strings.NewReplacer(
	"\u00a0", "", // espaço não separável
	"\u2009", "", // espaço fino
	"\u202f", "", // espaço fino não separável
	" ", "",
	"%", "",
	"€", "",
	"£", "",
	"$", "",
	"zł", "",
	"\u2212", "-",
)

// ParseNumber interpreta números em formato europeu ou americano.
// Quando o valor tem ponto e também vírgula, o separador mais à direita é o decimal.
// Valores inválidos ou não finitos viram zero.
func ParseNumber(s string) float64 {
	s = numberReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}

// parseUnits arredonda para inteiro não negativo
func parseUnits(values ...string) int {
	total := 0.0
	for _, v := range values {
		total += ParseNumber(v)
	}
	units := int(math.Round(total))
	if units < 0 {
		return 0
	}
	return units
}
