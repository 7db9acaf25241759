package employee

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Active *bool
}

type GetListResponse struct {
	ID         int     `json:"id"`
	FullName   *string `json:"full_name"`
	NationalID *string `json:"national_id"`
	Phone      *string `json:"phone"`
	Active     *bool   `json:"active"`
}

type GetDetailByIdResponse struct {
	ID         int     `json:"id"`
	FullName   *string `json:"full_name"`
	NationalID *string `json:"national_id"`
	Phone      *string `json:"phone"`
	Active     *bool   `json:"active"`
}

type CreateRequest struct {
	FullName   *string `json:"full_name" form:"full_name"`
	NationalID *string `json:"national_id" form:"national_id"`
	Phone      *string `json:"phone" form:"phone"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:employees"`

	ID         int       `json:"id" bun:"-"`
	FullName   *string   `json:"full_name" bun:"full_name"`
	NationalID *string   `json:"national_id" bun:"national_id"`
	Phone      *string   `json:"phone" bun:"phone"`
	Active     bool      `json:"active" bun:"active"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID         int     `json:"id" form:"id"`
	FullName   *string `json:"full_name" form:"full_name"`
	NationalID *string `json:"national_id" form:"national_id"`
	Phone      *string `json:"phone" form:"phone"`
	Active     *bool   `json:"active" form:"active"`
}

// ExportRow feeds the roster Excel export.
type ExportRow struct {
	FullName   string
	NationalID string
	Phone      string
	Active     bool
}
