package get_dashboard_stats

import (
	"context"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog/models"
)

type CatalogService interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
