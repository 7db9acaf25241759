package checkpoint

import (
	"context"

	"timetrack/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	CheckIn(ctx context.Context, request attendance.CheckInRequest) (attendance.CheckInResponse, error)
	CheckOut(ctx context.Context, request attendance.CheckOutRequest) (attendance.CheckOutResponse, error)
	Status(ctx context.Context, nationalID string) (attendance.StatusResponse, error)
}
