package ports

import (
	"context"
	"time"

	"github.com/drewshoe/top40-api/internal/application/dto"
)

// ReportCache puerto de cacheo de tablas de reporte. Get devuelve
// (nil, false, nil) en miss; un error de backend no debe impedir el reporte
// (el caller degrada a recalcular).
type ReportCache interface {
	Get(ctx context.Context, key string) (*dto.ReportTableDTO, bool, error)
	Set(ctx context.Context, key string, value *dto.ReportTableDTO, ttl time.Duration) error
}
