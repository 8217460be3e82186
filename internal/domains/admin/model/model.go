package model

import (
	"time"

	"staybook/shared/model"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID                = "id"
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPassword          = "password"
	FieldRole              = "role"
	FieldActive            = "active"
	FieldPasswordChangedAt = "password_changed_at"
	FieldLastLogin         = "last_login"
)

type Admin struct {
	ID                string     `db:"id"`
	Name              string     `db:"name"`
	Email             string     `db:"email"`
	Password          string     `db:"password"`
	Role              string     `db:"role"`
	Active            bool       `db:"active"`
	PasswordChangedAt *time.Time `db:"password_changed_at"`
	LastLogin         *time.Time `db:"last_login"`
	model.Metadata
}
