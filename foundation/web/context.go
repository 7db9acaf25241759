package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context wraps the gin context with the request's context.Context (claims
// are attached to Ctx, not to gin) and accumulated query/param parse
// errors, reported in one go by ValidQuery/ValidParam.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrs []string
	paramErrs []string
}

func NewContext(c *gin.Context) *Context {
	return &Context{Context: c, Ctx: c.Request.Context()}
}

// BindFunc binds the request body into obj and checks that the named
// struct fields were actually provided.
func (c *Context) BindFunc(obj interface{}, required ...string) error {
	if err := c.ShouldBind(obj); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	var missing []string
	for _, name := range required {
		field := v.FieldByName(name)
		if !field.IsValid() || field.IsZero() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return NewRequestError(fmt.Errorf("required fields: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	return nil
}

// GetQueryFunc reads an optional query parameter as a pointer of the given
// kind. Absent parameters return an untyped nil; malformed values are
// recorded and surfaced by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)
	if !ok || value == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("%s must be an integer", name))
			return nil
		}
		return &n
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("%s must be a boolean", name))
			return nil
		}
		return &b
	case reflect.String:
		return &value
	default:
		c.queryErrs = append(c.queryErrs, fmt.Sprintf("%s has unsupported type", name))
		return nil
	}
}

// ValidQuery reports every malformed query parameter seen so far.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) > 0 {
		return NewRequestError(errors.New(strings.Join(c.queryErrs, "; ")), http.StatusBadRequest)
	}
	return nil
}

// GetParam reads a path parameter of the given kind. Parse failures are
// recorded and surfaced by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, fmt.Sprintf("%s must be an integer", name))
			return 0
		}
		return n
	default:
		return value
	}
}

func (c *Context) ValidParam() error {
	if len(c.paramErrs) > 0 {
		return NewRequestError(errors.New(strings.Join(c.paramErrs, "; ")), http.StatusBadRequest)
	}
	return nil
}

// Respond writes data as-is with the given status.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError writes the error envelope. Only trusted request errors leak
// their message; anything else responds as an internal error.
func (c *Context) RespondError(err error) error {
	if err == nil {
		return nil
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	if webErr, ok := GetRequestError(err); ok {
		status = webErr.Status
		message = webErr.Err.Error()
	}

	c.JSON(status, gin.H{
		"data":   nil,
		"status": false,
		"error":  message,
	})
	return nil
}
