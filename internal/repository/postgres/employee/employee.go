package employee

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/auth"
	"timetrack/backend/internal/pkg/repository/postgresql"
	"timetrack/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			e.deleted_at IS NULL
		`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
		(e.national_id ilike '%s' OR e.full_name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.Active != nil {
		whereQuery += fmt.Sprintf(" AND e.active = %t", *filter.Active)
	}
	orderQuery := "ORDER BY e.full_name asc"

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
			e.id,
			e.full_name,
			e.national_id,
			e.phone,
			e.active
		FROM employees e
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting employees"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.FullName,
			&detail.NationalID,
			&detail.Phone,
			&detail.Active); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading employee list"), http.StatusInternalServerError)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(e.id)
		FROM employees e
		%s
	`, whereQuery)

	count := 0

	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			e.id,
			e.full_name,
			e.national_id,
			e.phone,
			e.active
		FROM employees e
		WHERE e.deleted_at IS NULL AND e.id = %d
	`, id)

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.FullName,
		&detail.NationalID,
		&detail.Phone,
		&detail.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee detail"), http.StatusBadRequest)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "FullName", "NationalID"); err != nil {
		return CreateResponse{}, err
	}

	taken, err := r.nationalIDTaken(ctx, *request.NationalID, 0)
	if err != nil {
		return CreateResponse{}, err
	}
	if taken {
		return CreateResponse{}, web.NewRequestError(errors.New("national_id is used"), http.StatusBadRequest)
	}

	var response CreateResponse

	response.FullName = request.FullName
	response.NationalID = request.NationalID
	response.Phone = request.Phone
	response.Active = true
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating employee"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("employees").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.NationalID != nil {
		taken, err := r.nationalIDTaken(ctx, *request.NationalID, request.ID)
		if err != nil {
			return err
		}
		if taken {
			return web.NewRequestError(errors.New("national_id is used"), http.StatusBadRequest)
		}
		q.Set("national_id = ?", request.NationalID)
	}
	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Active != nil {
		q.Set("active = ?", request.Active)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating employee"), http.StatusBadRequest)
	}

	return nil
}

// Delete soft-deletes the employee. Attendance history stays in place and
// is excluded from reports through the employee join.
func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "employees", id)
}

// GetExportList returns the full active roster for the Excel export.
func (r Repository) GetExportList(ctx context.Context) ([]ExportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	rows, err := r.QueryContext(ctx, `
		SELECT
			e.full_name,
			e.national_id,
			COALESCE(e.phone, ''),
			e.active
		FROM employees e
		WHERE e.deleted_at IS NULL
		ORDER BY e.full_name asc
	`)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting employee export"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []ExportRow

	for rows.Next() {
		var row ExportRow
		if err = rows.Scan(&row.FullName, &row.NationalID, &row.Phone, &row.Active); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning employee export"), http.StatusInternalServerError)
		}
		list = append(list, row)
	}

	return list, rows.Err()
}

func (r Repository) nationalIDTaken(ctx context.Context, nationalID string, excludeID int) (bool, error) {
	taken := true
	query := fmt.Sprintf(`SELECT
			CASE WHEN
			(SELECT id FROM employees WHERE national_id = '%s' AND deleted_at IS NULL AND id != %d) IS NOT NULL
			THEN true ELSE false END`,
		strings.Replace(nationalID, "'", "''", -1), excludeID)

	if err := r.QueryRowContext(ctx, query).Scan(&taken); err != nil {
		return false, web.NewRequestError(errors.Wrap(err, "national_id check"), http.StatusInternalServerError)
	}

	return taken, nil
}
