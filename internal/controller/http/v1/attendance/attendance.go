// Package attendance is the reporting controller: filtered listings,
// the daily dashboard summary and the Excel/PDF exports.
package attendance

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/repository/postgres/attendance"
	"timetrack/backend/internal/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	dailyStatisticsCacheKey = "attendance:daily_statistics"
	dailyStatisticsCacheTTL = 30 * time.Second
)

type Controller struct {
	attendance Attendance
	redisDB    *redis.Client
}

func NewController(attendance Attendance, redisDB *redis.Client) *Controller {
	return &Controller{attendance: attendance, redisDB: redisDB}
}

func (uc Controller) GetList(c *web.Context) error {
	filter, err := uc.bindFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

// GetDailyStatistics serves the dashboard summary, cached briefly in
// redis since every kiosk screen polls it.
func (uc Controller) GetDailyStatistics(c *web.Context) error {
	if uc.redisDB != nil {
		if cached, err := uc.redisDB.Get(c.Ctx, dailyStatisticsCacheKey).Bytes(); err == nil {
			var response attendance.DailyStatisticsResponse
			if err := json.Unmarshal(cached, &response); err == nil {
				return c.Respond(map[string]interface{}{
					"data":   response,
					"status": true,
				}, http.StatusOK)
			}
		}
	}

	response, err := uc.attendance.GetDailyStatistics(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	if uc.redisDB != nil {
		if payload, err := json.Marshal(response); err == nil {
			uc.redisDB.Set(c.Ctx, dailyStatisticsCacheKey, payload, dailyStatisticsCacheTTL)
		}
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ExportExcel(c *web.Context) error {
	rows, err := uc.exportRows(c)
	if err != nil {
		return c.RespondError(err)
	}

	f, err := service.BuildAttendanceExcel(rows)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "building excel export"), http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="attendance.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "writing excel export"), http.StatusInternalServerError))
	}

	return nil
}

func (uc Controller) ExportPDF(c *web.Context) error {
	rows, err := uc.exportRows(c)
	if err != nil {
		return c.RespondError(err)
	}

	payload, err := service.BuildAttendancePDF(rows, time.Now())
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "building pdf export"), http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="attendance.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)

	return nil
}

// exportRows runs the same filtered query the listing uses, without
// pagination, and flattens it for the export services.
func (uc Controller) exportRows(c *web.Context) ([]service.AttendanceRow, error) {
	filter, err := uc.bindFilter(c)
	if err != nil {
		return nil, err
	}
	filter.Limit = nil
	filter.Offset = nil
	filter.Page = nil

	list, _, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]service.AttendanceRow, 0, len(list))
	for _, item := range list {
		row := service.AttendanceRow{
			WorkedDuration: item.WorkedDuration,
		}
		if item.FullName != nil {
			row.FullName = *item.FullName
		}
		if item.NationalID != nil {
			row.NationalID = *item.NationalID
		}
		if item.WorkDay != nil {
			row.WorkDay = item.WorkDay.String()
		}
		if item.ShiftName != nil {
			row.Shift = *item.ShiftName
		}
		if item.ComeTime != nil {
			row.ComeTime = item.ComeTime.Format("15:04:05")
		}
		if item.LeaveTime != nil {
			row.LeaveTime = item.LeaveTime.Format("15:04:05")
		}
		if item.Late != nil {
			row.Late = *item.Late
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (uc Controller) bindFilter(c *web.Context) (attendance.Filter, error) {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if from, ok := c.GetQueryFunc(reflect.String, "from").(*string); ok {
		filter.From = from
	}
	if to, ok := c.GetQueryFunc(reflect.String, "to").(*string); ok {
		filter.To = to
	}
	if lateOnly, ok := c.GetQueryFunc(reflect.Bool, "late_only").(*bool); ok {
		filter.LateOnly = lateOnly
	}
	if err := c.ValidQuery(); err != nil {
		return attendance.Filter{}, err
	}

	return filter, nil
}
