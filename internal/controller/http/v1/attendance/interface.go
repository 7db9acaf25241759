package attendance

import (
	"context"

	"timetrack/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetDailyStatistics(ctx context.Context) (attendance.DailyStatisticsResponse, error)
}
