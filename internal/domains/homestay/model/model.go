package model

import "staybook/shared/model"

const (
	TableName  = "homestays"
	EntityName = "homestay"

	FieldID         = "id"
	FieldHomestayID = "homestay_id"
	FieldName       = "name"
	FieldOwner      = "owner"
	FieldOwnerMob   = "owner_mob"
	FieldLocation   = "location"
	FieldPrice      = "price"
	FieldImage      = "image"
)

// Homestay is a listing. HomestayID is the human chosen key used everywhere
// outside the database and never changes after creation.
type Homestay struct {
	ID         string `db:"id"`
	HomestayID string `db:"homestay_id"`
	Name       string `db:"name"`
	Owner      string `db:"owner"`
	OwnerMob   string `db:"owner_mob"`
	Location   string `db:"location"`
	Price      int    `db:"price"`
	Image      string `db:"image"`
	model.Metadata
}
