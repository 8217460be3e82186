package dto

import (
	"staybook/shared/constant"
	"staybook/shared/model"
	"staybook/shared/timezone"
)

// Metadata is the audit trail rendered on admin facing resources. Actors are
// omitted for rows written by a self registration or a migration seed.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	m.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	m.CreatedBy, m.ModifiedBy = source.CreatedBy, source.ModifiedBy
}
