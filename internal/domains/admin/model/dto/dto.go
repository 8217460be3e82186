package dto

import (
	"time"

	"staybook/internal/domains/admin/model"
	gDto "staybook/shared/dto"
)

type AdminResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	gDto.Metadata
}

// FromModel never copies the password hash.
func (r *AdminResponse) FromModel(admin model.Admin) {
	r.ID = admin.ID
	r.Name = admin.Name
	r.Email = admin.Email
	r.Role = admin.Role
	r.Active = admin.Active
	r.LastLogin = admin.LastLogin
	r.Metadata.FromModel(admin.Metadata)
}
