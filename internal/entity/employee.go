package entity

import (
	"github.com/uptrace/bun"
)

type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	BasicEntity
	FullName   *string `json:"full_name" bun:"full_name"`
	NationalID *string `json:"national_id" bun:"national_id"`
	Phone      *string `json:"phone" bun:"phone"`
	Active     *bool   `json:"active" bun:"active"`
}
