package ports

import (
	"context"

	"github.com/drewshoe/top40-api/internal/application/dto"
)

// ReportPDFGenerator puerto de salida para renderizar una tabla de reporte
// como documento PDF.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, table *dto.ReportTableDTO) ([]byte, error)
}
