package router

import (
	"time"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/auth"
	"timetrack/backend/internal/middleware"
	"timetrack/backend/internal/pkg/repository/postgresql"
	"timetrack/backend/internal/shift"

	"github.com/redis/go-redis/v9"

	"timetrack/backend/internal/repository/postgres/attendance"
	"timetrack/backend/internal/repository/postgres/employee"
	"timetrack/backend/internal/repository/postgres/user"

	attendance_controller "timetrack/backend/internal/controller/http/v1/attendance"
	auth_controller "timetrack/backend/internal/controller/http/v1/auth"
	checkpoint_controller "timetrack/backend/internal/controller/http/v1/checkpoint"
	employee_controller "timetrack/backend/internal/controller/http/v1/employee"
)

type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	redisDB        *redis.Client
	port           string
	auth           *auth.Auth
	privateKeyPath string
	schedule       shift.Schedule
	location       *time.Location
	allowedOrigins []string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	privateKeyPath string,
	schedule shift.Schedule,
	location *time.Location,
	allowedOrigins []string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		privateKeyPath,
		schedule,
		location,
		allowedOrigins,
	}
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware(r.allowedOrigins))

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	employeePostgres := employee.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, r.schedule, r.location)

	// controller
	authController := auth_controller.NewController(userPostgres, r.privateKeyPath)
	employeeController := employee_controller.NewController(employeePostgres)
	checkpointController := checkpoint_controller.NewController(attendancePostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres, r.redisDB)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #checkpoint, the kiosk endpoints are unauthenticated on purpose
	r.Post("/api/v1/checkpoint/check-in", checkpointController.CheckIn)
	r.Post("/api/v1/checkpoint/check-out", checkpointController.CheckOut)
	r.Get("/api/v1/checkpoint/status", checkpointController.Status)

	// #employee
	r.Get("/api/v1/employee/list", employeeController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/export", employeeController.ExportExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/:id", employeeController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/:id/badge", employeeController.Badge, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/employee/create", employeeController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/employee/:id", employeeController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/employee/:id", employeeController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/statistics", attendanceController.GetDailyStatistics, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/export_excel", attendanceController.ExportExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/export_pdf", attendanceController.ExportPDF, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
