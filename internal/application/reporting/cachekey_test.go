package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drewshoe/top40-api/internal/application/dto"
)

func TestCacheKey_IdentidadCompletaDelReporte(t *testing.T) {
	base := dto.ReportRequest{StartDate: "2026-01-01", EndDate: "2026-01-31"}

	k1 := cacheKey(dto.ViewStyles, base)
	assert.Equal(t, k1, cacheKey(dto.ViewStyles, base), "misma identidad, misma clave")

	assert.NotEqual(t, k1, cacheKey(dto.ViewCustomers, base), "la vista participa de la clave")

	other := base
	other.EndDate = "2026-02-28"
	assert.NotEqual(t, k1, cacheKey(dto.ViewStyles, other), "el rango participa de la clave")

	filtered := base
	filtered.Category = []string{"BOOTS"}
	assert.NotEqual(t, k1, cacheKey(dto.ViewStyles, filtered), "los filtros participan de la clave")
}

func TestCacheKey_OrdenDeFiltrosIrrelevante(t *testing.T) {
	a := dto.ReportRequest{StartDate: "2026-01-01", EndDate: "2026-01-31", Vendor: []string{"ACME", "ZETA"}}
	b := dto.ReportRequest{StartDate: "2026-01-01", EndDate: "2026-01-31", Vendor: []string{"ZETA", "ACME"}}
	assert.Equal(t, cacheKey(dto.ViewStyles, a), cacheKey(dto.ViewStyles, b))
}
