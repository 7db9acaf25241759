package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	Login    *string `json:"login" bun:"login"`
	FullName *string `json:"full_name" bun:"full_name"`
	Password *string `json:"password" bun:"password"`
	Role     *string `json:"role" bun:"role"`
}
