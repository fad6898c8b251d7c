// Package format contiene helpers de presentación para los exports (CSV/PDF):
// moneda y números con sufijos K/M, porcentajes y truncado de texto.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	hundred  = decimal.NewFromInt(100)
)

// Currency formatea un monto como moneda abreviada: $1,234.56, $12.3K, $4.5M.
func Currency(d decimal.Decimal) string {
	if d.IsZero() {
		return "$0"
	}
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return "$" + group(d.Div(million).StringFixed(1)) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return "$" + group(d.Div(thousand).StringFixed(1)) + "K"
	default:
		return "$" + group(d.StringFixed(2))
	}
}

// Number formatea una cantidad con separador de miles y sufijos K/M.
func Number(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return group(d.Div(million).StringFixed(1)) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return group(d.Div(thousand).StringFixed(1)) + "K"
	default:
		return group(d.StringFixed(0))
	}
}

// Percent formatea un ratio (0.475 -> "47.5%"). Un NullDecimal inválido
// (GM% indefinido por retail cero) se muestra como "0.0%".
func Percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return "0.0%"
	}
	return d.Decimal.Mul(hundred).StringFixed(1) + "%"
}

// Truncate corta el texto a maxLen caracteres añadiendo "..." si excede.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// group inserta separador de miles en la parte entera de un número ya formateado.
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	out := intPart + frac
	if neg {
		out = "-" + out
	}
	return out
}
