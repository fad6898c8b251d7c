package reporting

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/drewshoe/top40-api/internal/application/dto"
)

// cacheKey deriva la clave de cache de la identidad completa del reporte:
// vista, rango de fechas y filtros normalizados (orden de filtros irrelevante).
func cacheKey(view string, req dto.ReportRequest) string {
	parts := []string{
		"top40", view, req.StartDate, req.EndDate,
		"cat=" + canon(req.Category),
		"ven=" + canon(req.Vendor),
		"brd=" + canon(req.Brand),
		"ter=" + canon(req.Territory),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "top40:report:" + hex.EncodeToString(sum[:])
}

func canon(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
