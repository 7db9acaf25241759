package attendance

import (
	"encoding/json"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type CheckInRequest struct {
	NationalID *string `json:"national_id" form:"national_id"`
}

type CheckInResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID         int       `json:"id" bun:"-"`
	EmployeeID int       `json:"-" bun:"employee_id"`
	FullName   string    `json:"full_name" bun:"-"`
	WorkDay    string    `json:"work_day" bun:"work_day"`
	ComeTime   string    `json:"come_time" bun:"come_time"`
	ShiftName  string    `json:"shift" bun:"shift_name"`
	Late       bool      `json:"late" bun:"late"`
	Completed  bool      `json:"-" bun:"completed"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
}

type CheckOutRequest struct {
	NationalID *string `json:"national_id" form:"national_id"`
}

type CheckOutResponse struct {
	ID             int    `json:"id"`
	FullName       string `json:"full_name"`
	WorkDay        string `json:"work_day"`
	LeaveTime      string `json:"leave_time"`
	WorkedDuration string `json:"worked_duration"`
}

// Kiosk states for an employee's current day.
const (
	StateNotCheckedIn = "NOT_CHECKED_IN"
	StateOpen         = "OPEN"
	StateClosed       = "CLOSED"
)

type StatusResponse struct {
	EmployeeID     int     `json:"employee_id"`
	FullName       string  `json:"full_name"`
	NationalID     string  `json:"national_id"`
	State          string  `json:"state"`
	WorkDay        *string `json:"work_day,omitempty"`
	ComeTime       *string `json:"come_time,omitempty"`
	LeaveTime      *string `json:"leave_time,omitempty"`
	WorkedDuration *string `json:"worked_duration,omitempty"`
}

type Filter struct {
	Limit    *int
	Offset   *int
	Page     *int
	Search   *string
	From     *string
	To       *string
	LateOnly *bool
}

type GetListResponse struct {
	ID             int        `json:"id"`
	FullName       *string    `json:"full_name"`
	NationalID     *string    `json:"national_id"`
	WorkDay        *date.Date `json:"work_day"`
	ShiftName      *string    `json:"shift"`
	Late           *bool      `json:"late"`
	ComeTime       *time.Time `json:"come_time,omitempty"`
	LeaveTime      *time.Time `json:"leave_time,omitempty"`
	WorkedDuration string     `json:"worked_duration"`
}

func (r *GetListResponse) MarshalJSON() ([]byte, error) {
	type Alias GetListResponse
	aux := &struct {
		ComeTime  string `json:"come_time,omitempty"`
		LeaveTime string `json:"leave_time,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if r.ComeTime != nil {
		aux.ComeTime = r.ComeTime.Format("15:04:05")
	}

	if r.LeaveTime != nil {
		aux.LeaveTime = r.LeaveTime.Format("15:04:05")
	}

	return json.Marshal(aux)
}

type DailyStatisticsResponse struct {
	TotalEmployees int `json:"total_employees"`
	CheckedIn      int `json:"checked_in"`
	Late           int `json:"late"`
	Absent         int `json:"absent"`
}

// openRecord is the slice of an attendance row the check-out needs.
type openRecord struct {
	ID        int
	ComeTime  string
	LeaveTime *string
	Completed bool
}
