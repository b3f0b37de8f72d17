package pkg

import (
	"fmt"
	"math"
	"strings"
)

// FormatBRL formata um valor monetário no padrão brasileiro: R$ 1.234,56.
func FormatBRL(value float64) string {
	negative := value < 0
	cents := int64(math.Round(math.Abs(value) * 100))

	intPart := cents / 100
	fracPart := cents % 100

	digits := fmt.Sprintf("%d", intPart)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := fmt.Sprintf("R$ %s,%02d", strings.Join(groups, "."), fracPart)
	if negative {
		return "-" + formatted
	}
	return formatted
}

// RoundCents arredonda um valor para duas casas decimais.
func RoundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
