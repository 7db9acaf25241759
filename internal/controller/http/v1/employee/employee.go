package employee

import (
	"net/http"
	"reflect"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/repository/postgres/employee"
	"timetrack/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	employee Employee
}

func NewController(employee Employee) *Controller {
	return &Controller{employee}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter employee.Filter

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
	if active, ok := c.GetQueryFunc(reflect.Bool, "active").(*bool); ok {
		filter.Active = active
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.employee.GetList(c.Ctx, filter)
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

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request employee.CreateRequest
	if err := c.BindFunc(&request, "FullName", "NationalID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request employee.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.employee.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.employee.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// Badge streams the employee's check-in QR code as a PNG.
func (uc Controller) Badge(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	size := 256
	if requested, ok := c.GetQueryFunc(reflect.Int, "size").(*int); ok && requested != nil {
		size = *requested
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if detail.NationalID == nil {
		return c.RespondError(web.NewRequestError(errors.New("employee has no national id"), http.StatusNotFound))
	}

	payload, err := service.EmployeeBadge(*detail.NationalID, size)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "building badge"), http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `inline; filename="badge.png"`)
	c.Data(http.StatusOK, "image/png", payload)

	return nil
}

func (uc Controller) ExportExcel(c *web.Context) error {
	list, err := uc.employee.GetExportList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	rows := make([]service.EmployeeRow, 0, len(list))
	for _, item := range list {
		rows = append(rows, service.EmployeeRow{
			FullName:   item.FullName,
			NationalID: item.NationalID,
			Phone:      item.Phone,
			Active:     item.Active,
		})
	}

	f, err := service.BuildEmployeeExcel(rows)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "building excel export"), http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="employees.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "writing excel export"), http.StatusInternalServerError))
	}

	return nil
}
