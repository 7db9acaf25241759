package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/entity"
	"timetrack/backend/internal/pkg/repository/postgresql"
	"timetrack/backend/internal/repository/postgres"
	"timetrack/backend/internal/shift"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Lifecycle errors surfaced to the kiosk.
var (
	ErrNoOpenShift      = errors.New("no open shift to close")
	ErrAlreadyCheckedIn = errors.New("employee already checked in")
)

// Employee is the resolved kiosk identity.
type Employee struct {
	ID         int
	FullName   string
	NationalID string
}

type Repository struct {
	*postgresql.Database

	schedule shift.Schedule
	location *time.Location
	now      func() time.Time
}

func NewRepository(database *postgresql.Database, schedule shift.Schedule, location *time.Location) *Repository {
	return &Repository{
		Database: database,
		schedule: schedule,
		location: location,
		now:      time.Now,
	}
}

// CheckIn opens a new attendance record for the employee behind the
// national id: classify the arrival clock time into a shift, flag
// lateness, store the record open. An open record a check-out could still
// reach blocks a second check-in; an older one abandoned past the grace
// window does not, so the employee starts a fresh day instead of being
// locked out.
func (r Repository) CheckIn(ctx context.Context, request CheckInRequest) (CheckInResponse, error) {
	if err := r.ValidateStruct(&request, "NationalID"); err != nil {
		return CheckInResponse{}, err
	}

	emp, err := r.getEmployee(ctx, *request.NationalID)
	if err != nil {
		return CheckInResponse{}, err
	}

	now := r.now().In(r.location)

	open, err := r.hasOpenRecord(ctx, emp.ID, now)
	if err != nil {
		return CheckInResponse{}, err
	}
	if open {
		return CheckInResponse{}, web.NewRequestError(ErrAlreadyCheckedIn, http.StatusConflict)
	}

	arrival := shift.ClockOf(now)
	def, late := r.schedule.Classify(arrival)

	response := CheckInResponse{
		EmployeeID: emp.ID,
		WorkDay:    now.Format("2006-01-02"),
		ComeTime:   arrival.String(),
		ShiftName:  def.Name,
		Late:       late,
		Completed:  false,
		CreatedAt:  now,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusBadRequest)
	}

	response.FullName = emp.FullName

	return response, nil
}

// CheckOut closes the employee's open record. The lookup follows the
// schedule's checkout plan: today's most recent record first (a completed
// one means there is nothing left to close), then yesterday's open record
// while still inside the night-shift grace window. The close itself is a
// single conditional update guarded by the open state, so the loser of two
// concurrent check-outs matches no row and reports no open shift. Worked
// time anchors the departure on its actual calendar date, which is what
// keeps a shift spanning midnight from going negative.
func (r Repository) CheckOut(ctx context.Context, request CheckOutRequest) (CheckOutResponse, error) {
	if err := r.ValidateStruct(&request, "NationalID"); err != nil {
		return CheckOutResponse{}, err
	}

	emp, err := r.getEmployee(ctx, *request.NationalID)
	if err != nil {
		return CheckOutResponse{}, err
	}

	now := r.now().In(r.location)

	for _, step := range r.schedule.CheckoutPlan(now) {
		record, found, err := r.findRecord(ctx, emp.ID, step)
		if err != nil {
			return CheckOutResponse{}, err
		}
		if !found {
			continue
		}
		if record.Completed || record.LeaveTime != nil {
			// Today's shift is already closed; there is nothing to reopen.
			return CheckOutResponse{}, web.NewRequestError(ErrNoOpenShift, http.StatusNotFound)
		}

		arrival, err := shift.ParseTimeOfDay(record.ComeTime)
		if err != nil {
			return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "parsing come_time"), http.StatusInternalServerError)
		}

		worked := shift.FormatDuration(shift.WorkedDuration(step.WorkDay, arrival, now))
		leave := shift.ClockOf(now).String()

		q := r.NewUpdate().
			Table("attendance").
			Where("id = ? AND completed = false AND leave_time IS NULL", record.ID).
			Set("leave_time = ?", leave).
			Set("worked_duration = ?", worked).
			Set("completed = true").
			Set("updated_at = ?", now)

		result, err := q.Exec(ctx)
		if err != nil {
			return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "closing attendance"), http.StatusBadRequest)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "checking affected rows"), http.StatusInternalServerError)
		}
		if rows == 0 {
			// A concurrent check-out got there first.
			return CheckOutResponse{}, web.NewRequestError(ErrNoOpenShift, http.StatusNotFound)
		}

		return CheckOutResponse{
			ID:             record.ID,
			FullName:       emp.FullName,
			WorkDay:        step.WorkDay.Format("2006-01-02"),
			LeaveTime:      leave,
			WorkedDuration: worked,
		}, nil
	}

	return CheckOutResponse{}, web.NewRequestError(ErrNoOpenShift, http.StatusNotFound)
}

// Status reports the employee's current record state for the kiosk
// screen, using the same lookup plan as check-out so a night worker still
// sees their open shift after midnight.
func (r Repository) Status(ctx context.Context, nationalID string) (StatusResponse, error) {
	emp, err := r.getEmployee(ctx, nationalID)
	if err != nil {
		return StatusResponse{}, err
	}

	response := StatusResponse{
		EmployeeID: emp.ID,
		FullName:   emp.FullName,
		NationalID: emp.NationalID,
		State:      StateNotCheckedIn,
	}

	now := r.now().In(r.location)

	for _, step := range r.schedule.CheckoutPlan(now) {
		record, found, err := r.findRecord(ctx, emp.ID, step)
		if err != nil {
			return StatusResponse{}, err
		}
		if !found {
			continue
		}

		workDay := step.WorkDay.Format("2006-01-02")
		response.WorkDay = &workDay
		response.ComeTime = &record.ComeTime

		if record.Completed || record.LeaveTime != nil {
			response.State = StateClosed
			response.LeaveTime = record.LeaveTime

			worked, err := r.workedDuration(ctx, record.ID)
			if err != nil {
				return StatusResponse{}, err
			}
			response.WorkedDuration = worked
		} else {
			response.State = StateOpen
		}

		return response, nil
	}

	return response, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			a.deleted_at IS NULL AND e.deleted_at IS NULL
		`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
		(e.national_id ilike '%s' OR e.full_name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.From != nil {
		from, err := time.Parse("2006-01-02", *filter.From)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "from date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.work_day >= '%s'", from.Format("2006-01-02"))
	}
	if filter.To != nil {
		to, err := time.Parse("2006-01-02", *filter.To)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "to date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.work_day <= '%s'", to.Format("2006-01-02"))
	}
	if filter.LateOnly != nil && *filter.LateOnly {
		whereQuery += " AND a.late = true"
	}

	orderQuery := "ORDER BY a.work_day desc, a.come_time desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			e.full_name,
			e.national_id,
			a.work_day,
			a.shift_name,
			a.late,
			a.come_time,
			a.leave_time,
			a.worked_duration
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var workDayString string
		var comeTimeBytes []byte
		var leaveTimeBytes []byte
		var workedDuration *string

		if err = rows.Scan(
			&detail.ID,
			&detail.FullName,
			&detail.NationalID,
			&workDayString,
			&detail.ShiftName,
			&detail.Late,
			&comeTimeBytes,
			&leaveTimeBytes,
			&workedDuration); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusBadRequest)
		}
		detail.WorkDay = &workDay

		comeTime, err := time.Parse("15:04:05", string(comeTimeBytes))
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting come_time to time.Time"), http.StatusBadRequest)
		}
		detail.ComeTime = &comeTime

		if leaveTimeBytes != nil {
			leaveTime, err := time.Parse("15:04:05", string(leaveTimeBytes))
			if err != nil {
				return nil, 0, web.NewRequestError(errors.Wrap(err, "converting leave_time to time.Time"), http.StatusBadRequest)
			}
			detail.LeaveTime = &leaveTime
		}

		if workedDuration != nil {
			detail.WorkedDuration = *workedDuration
		}

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading attendance list"), http.StatusInternalServerError)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		%s
	`, whereQuery)

	count := 0

	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetDailyStatistics summarizes today's attendance for the dashboard.
func (r Repository) GetDailyStatistics(ctx context.Context) (DailyStatisticsResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return DailyStatisticsResponse{}, err
	}

	today := shift.DateOf(r.now().In(r.location)).Format("2006-01-02")

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(id) FROM employees WHERE deleted_at IS NULL AND active = true) AS total_employees,
			(SELECT COUNT(DISTINCT employee_id) FROM attendance WHERE deleted_at IS NULL AND work_day = '%s') AS checked_in,
			(SELECT COUNT(id) FROM attendance WHERE deleted_at IS NULL AND work_day = '%s' AND late = true) AS late
	`, today, today)

	var response DailyStatisticsResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&response.TotalEmployees,
		&response.CheckedIn,
		&response.Late,
	)
	if err != nil {
		return DailyStatisticsResponse{}, web.NewRequestError(errors.Wrap(err, "fetching daily statistics"), http.StatusBadRequest)
	}

	response.Absent = response.TotalEmployees - response.CheckedIn
	if response.Absent < 0 {
		response.Absent = 0
	}

	return response, nil
}

func (r Repository) getEmployee(ctx context.Context, nationalID string) (Employee, error) {
	var detail entity.Employee

	err := r.NewSelect().
		Model(&detail).
		Where("national_id = ? AND deleted_at IS NULL AND active = true", strings.TrimSpace(nationalID)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, web.NewRequestError(errors.New("employee not found"), http.StatusNotFound)
	}
	if err != nil {
		return Employee{}, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
	}

	emp := Employee{ID: detail.ID}
	if detail.FullName != nil {
		emp.FullName = *detail.FullName
	}
	if detail.NationalID != nil {
		emp.NationalID = *detail.NationalID
	}

	return emp, nil
}

// hasOpenRecord reports whether the employee has an open record on a work
// day the checkout plan can still reach. Open records older than that are
// unreachable by check-out and must not block a fresh check-in.
func (r Repository) hasOpenRecord(ctx context.Context, employeeID int, now time.Time) (bool, error) {
	days := make([]string, 0, 2)
	for _, step := range r.schedule.CheckoutPlan(now) {
		days = append(days, step.WorkDay.Format("2006-01-02"))
	}

	open := false

	err := r.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendance
			WHERE deleted_at IS NULL AND employee_id = ? AND completed = false AND leave_time IS NULL AND work_day IN (?)
		)
	`, employeeID, bun.In(days)).Scan(&open)
	if err != nil {
		return false, web.NewRequestError(errors.Wrap(err, "open record check"), http.StatusInternalServerError)
	}

	return open, nil
}

func (r Repository) findRecord(ctx context.Context, employeeID int, step shift.SearchStep) (openRecord, bool, error) {
	query := `
		SELECT id, come_time, leave_time, completed
		FROM attendance
		WHERE deleted_at IS NULL AND employee_id = ? AND work_day = ?
	`
	if step.OpenOnly {
		query += ` AND completed = false AND leave_time IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT 1`

	var record openRecord
	var comeTimeBytes []byte
	var leaveTimeBytes []byte

	err := r.QueryRowContext(ctx, query, employeeID, step.WorkDay.Format("2006-01-02")).Scan(
		&record.ID,
		&comeTimeBytes,
		&leaveTimeBytes,
		&record.Completed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return openRecord{}, false, nil
	}
	if err != nil {
		return openRecord{}, false, web.NewRequestError(errors.Wrap(err, "selecting open record"), http.StatusInternalServerError)
	}

	record.ComeTime = string(comeTimeBytes)
	if leaveTimeBytes != nil {
		leave := string(leaveTimeBytes)
		record.LeaveTime = &leave
	}

	return record, true, nil
}

func (r Repository) workedDuration(ctx context.Context, recordID int) (*string, error) {
	var worked *string

	err := r.QueryRowContext(ctx, `
		SELECT worked_duration FROM attendance WHERE id = ?
	`, recordID).Scan(&worked)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting worked_duration"), http.StatusInternalServerError)
	}

	return worked, nil
}
