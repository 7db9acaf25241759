// Package checkpoint is the kiosk-facing controller: employees identify
// themselves with the national id on their badge and clock in or out.
package checkpoint

import (
	"net/http"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/repository/postgres/attendance"

	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance: attendance}
}

func (uc Controller) CheckIn(c *web.Context) error {
	var request attendance.CheckInRequest
	if err := c.BindFunc(&request, "NationalID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.CheckIn(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CheckOut(c *web.Context) error {
	var request attendance.CheckOutRequest
	if err := c.BindFunc(&request, "NationalID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.CheckOut(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Status(c *web.Context) error {
	nationalID := c.Query("national_id")
	if nationalID == "" {
		return c.RespondError(web.NewRequestError(errors.New("national_id parameter is required"), http.StatusBadRequest))
	}

	response, err := uc.attendance.Status(c.Ctx, nationalID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
