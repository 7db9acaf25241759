package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/auth"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

var validate = validator.New()

// Database wraps the bun connection with the request-level helpers the
// repositories share: claims checking, struct validation and soft deletes.
type Database struct {
	*bun.DB
}

// NewDatabase opens a bun/pgdriver connection. Query logging is on for
// failed queries only.
func NewDatabase(dsn string, insecure bool) *Database {
	pgconn := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithInsecure(insecure),
	)

	sqldb := sql.OpenDB(pgconn)
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithEnabled(false), bundebug.FromEnv("BUNDEBUG")))

	return &Database{DB: db}
}

// CheckClaims pulls the authenticated claims from the context. With roles
// given, the claims must match one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields are set and then runs the
// struct's validate tags.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	fields := map[string]string{}
	for _, name := range requiredFields {
		field := v.FieldByName(name)
		if !field.IsValid() || field.IsZero() {
			fields[name] = "required"
		}
	}
	if len(fields) > 0 {
		var names []string
		for name := range fields {
			names = append(names, name)
		}
		return &web.Error{
			Err:    fmt.Errorf("required fields: %s", strings.Join(names, ", ")),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	if err := validate.Struct(s); err != nil {
		return web.NewRequestError(errors.Wrap(err, "validating struct"), http.StatusBadRequest)
	}

	return nil
}

// DeleteRow soft-deletes one row, keeping who removed it.
func (d Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().
		Table(table).
		Where("deleted_at IS NULL AND id = ?", id).
		Set("deleted_at = ?", time.Now()).
		Set("deleted_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting from %s", table), http.StatusBadRequest)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking affected rows"), http.StatusInternalServerError)
	}
	if rows == 0 {
		return web.NewRequestError(errors.New("row not found"), http.StatusNotFound)
	}

	return nil
}
