// Package cache guarda tablas de reporte ya calculadas para que recargas del
// mismo rango y filtros no vuelvan a golpear al ERP. Tres drivers: noop (sin
// cache), memoria local y Redis.
package cache

import (
	"context"
	"time"

	"github.com/drewshoe/top40-api/internal/application/dto"
	"github.com/drewshoe/top40-api/internal/application/ports"
)

var (
	_ ports.ReportCache = Noop{}
	_ ports.ReportCache = (*Memory)(nil)
	_ ports.ReportCache = (*Redis)(nil)
)

// Noop driver sin cache: siempre miss, nunca guarda.
type Noop struct{}

func (Noop) Get(_ context.Context, _ string) (*dto.ReportTableDTO, bool, error) {
	return nil, false, nil
}

func (Noop) Set(_ context.Context, _ string, _ *dto.ReportTableDTO, _ time.Duration) error {
	return nil
}
