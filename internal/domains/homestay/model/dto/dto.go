package dto

import (
	"time"

	"github.com/google/uuid"

	"staybook/internal/domains/homestay/model"
	"staybook/shared"
	gDto "staybook/shared/dto"
	gModel "staybook/shared/model"
)

type CreateHomestayRequest struct {
	HomestayID string       `json:"homestay_id" validate:"required,max=50"`
	Name       string       `json:"name"        validate:"required,max=100"`
	Owner      string       `json:"owner"       validate:"required,max=100"`
	OwnerMob   string       `json:"owner_mob"   validate:"required,numeric,min=7,max=15"`
	Location   string       `json:"location"    validate:"required,max=200"`
	Price      int          `json:"price"       validate:"required,gt=0"`
	Image      *gDto.Upload `json:"image"       validate:"omitempty"`
}

func (c *CreateHomestayRequest) ToModel(user, imageURL string, now time.Time) model.Homestay {
	return model.Homestay{
		ID:         uuid.NewString(),
		HomestayID: c.HomestayID,
		Name:       c.Name,
		Owner:      c.Owner,
		OwnerMob:   c.OwnerMob,
		Location:   c.Location,
		Price:      c.Price,
		Image:      imageURL,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

// UpdateHomestayRequest is a partial update; nil and empty fields are left
// untouched. The key is not updatable.
type UpdateHomestayRequest struct {
	Name     string       `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Owner    string       `db:"owner"     json:"owner"     validate:"omitempty,max=100"`
	OwnerMob string       `db:"owner_mob" json:"owner_mob" validate:"omitempty,numeric,min=7,max=15"`
	Location string       `db:"location"  json:"location"  validate:"omitempty,max=200"`
	Price    *int         `db:"price"     json:"price"     validate:"omitempty,gt=0"`
	Image    *gDto.Upload `json:"image"    validate:"omitempty"`
}

func (u *UpdateHomestayRequest) IsEmpty() bool {
	return *u == UpdateHomestayRequest{}
}

type HomestayResponse struct {
	ID         string `json:"id"`
	HomestayID string `json:"homestay_id"`
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	OwnerMob   string `json:"owner_mob"`
	Location   string `json:"location"`
	Price      int    `json:"price"`
	Image      string `json:"image"`
	gDto.Metadata
}

func (r *HomestayResponse) FromModel(model model.Homestay) {
	r.ID = model.ID
	r.HomestayID = model.HomestayID
	r.Name = model.Name
	r.Owner = model.Owner
	r.OwnerMob = model.OwnerMob
	r.Location = model.Location
	r.Price = model.Price
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetHomestaysResponse struct {
	Homestays []HomestayResponse `json:"homestays"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetHomestaysResponse) FromModels(models []model.Homestay, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Homestays = make([]HomestayResponse, len(models))
	for i, mod := range models {
		r.Homestays[i].FromModel(mod)
	}
}
