package checkpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/repository/postgres/attendance"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attendanceMock struct {
	checkInFn  func(ctx context.Context, request attendance.CheckInRequest) (attendance.CheckInResponse, error)
	checkOutFn func(ctx context.Context, request attendance.CheckOutRequest) (attendance.CheckOutResponse, error)
	statusFn   func(ctx context.Context, nationalID string) (attendance.StatusResponse, error)
}

func (m attendanceMock) CheckIn(ctx context.Context, request attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	return m.checkInFn(ctx, request)
}

func (m attendanceMock) CheckOut(ctx context.Context, request attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	return m.checkOutFn(ctx, request)
}

func (m attendanceMock) Status(ctx context.Context, nationalID string) (attendance.StatusResponse, error) {
	return m.statusFn(ctx, nationalID)
}

func newTestApp(mock attendanceMock) *web.App {
	gin.SetMode(gin.TestMode)

	app := &web.App{Engine: gin.New()}
	controller := NewController(mock)

	app.Post("/api/v1/checkpoint/check-in", controller.CheckIn)
	app.Post("/api/v1/checkpoint/check-out", controller.CheckOut)
	app.Get("/api/v1/checkpoint/status", controller.Status)

	return app
}

func doJSON(t *testing.T, app *web.App, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	return w, envelope
}

func TestCheckIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := attendanceMock{
			checkInFn: func(_ context.Context, request attendance.CheckInRequest) (attendance.CheckInResponse, error) {
				require.NotNil(t, request.NationalID)
				assert.Equal(t, "AAA010101", *request.NationalID)
				return attendance.CheckInResponse{
					ID:        1,
					FullName:  "Maria Lopez",
					WorkDay:   "2026-03-02",
					ComeTime:  "08:58:12",
					ShiftName: "Day",
					Late:      false,
				}, nil
			},
		}

		w, envelope := doJSON(t, newTestApp(mock), http.MethodPost, "/api/v1/checkpoint/check-in", map[string]string{"national_id": "AAA010101"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, envelope["status"])

		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, "Maria Lopez", data["full_name"])
		assert.Equal(t, "Day", data["shift"])
		assert.Equal(t, false, data["late"])
	})

	t.Run("already checked in", func(t *testing.T) {
		mock := attendanceMock{
			checkInFn: func(context.Context, attendance.CheckInRequest) (attendance.CheckInResponse, error) {
				return attendance.CheckInResponse{}, web.NewRequestError(attendance.ErrAlreadyCheckedIn, http.StatusConflict)
			},
		}

		w, envelope := doJSON(t, newTestApp(mock), http.MethodPost, "/api/v1/checkpoint/check-in", map[string]string{"national_id": "AAA010101"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, false, envelope["status"])
		assert.Contains(t, envelope["error"], "already checked in")
	})

	t.Run("missing national id", func(t *testing.T) {
		w, envelope := doJSON(t, newTestApp(attendanceMock{}), http.MethodPost, "/api/v1/checkpoint/check-in", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, envelope["status"])
	})
}

func TestCheckOut(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := attendanceMock{
			checkOutFn: func(context.Context, attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
				return attendance.CheckOutResponse{
					ID:             7,
					FullName:       "Maria Lopez",
					WorkDay:        "2026-03-02",
					LeaveTime:      "16:03:40",
					WorkedDuration: "7:05:28",
				}, nil
			},
		}

		w, envelope := doJSON(t, newTestApp(mock), http.MethodPost, "/api/v1/checkpoint/check-out", map[string]string{"national_id": "AAA010101"})

		assert.Equal(t, http.StatusOK, w.Code)

		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, "7:05:28", data["worked_duration"])
	})

	t.Run("no open shift", func(t *testing.T) {
		mock := attendanceMock{
			checkOutFn: func(context.Context, attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
				return attendance.CheckOutResponse{}, web.NewRequestError(attendance.ErrNoOpenShift, http.StatusNotFound)
			},
		}

		w, envelope := doJSON(t, newTestApp(mock), http.MethodPost, "/api/v1/checkpoint/check-out", map[string]string{"national_id": "AAA010101"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, envelope["status"])
	})
}

func TestStatus(t *testing.T) {
	t.Run("open record", func(t *testing.T) {
		workDay := "2026-03-02"
		comeTime := "08:58:12"
		mock := attendanceMock{
			statusFn: func(_ context.Context, nationalID string) (attendance.StatusResponse, error) {
				assert.Equal(t, "AAA010101", nationalID)
				return attendance.StatusResponse{
					EmployeeID: 3,
					FullName:   "Maria Lopez",
					NationalID: nationalID,
					State:      attendance.StateOpen,
					WorkDay:    &workDay,
					ComeTime:   &comeTime,
				}, nil
			},
		}

		w, envelope := doJSON(t, newTestApp(mock), http.MethodGet, "/api/v1/checkpoint/status?national_id=AAA010101", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, attendance.StateOpen, data["state"])
		assert.Equal(t, comeTime, data["come_time"])
	})

	t.Run("missing national id", func(t *testing.T) {
		w, envelope := doJSON(t, newTestApp(attendanceMock{}), http.MethodGet, "/api/v1/checkpoint/status", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, envelope["status"])
	})
}
