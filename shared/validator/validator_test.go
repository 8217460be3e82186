package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/shared/failure"
	"staybook/shared/validator"
)

type stay struct {
	HomestayID string `json:"homestay_id" validate:"required,max=10"`
	CheckIn    string `json:"check_in"    validate:"required,staydate"`
	Rooms      int    `json:"rooms"       validate:"gte=1"`
	MealPlan   string `json:"meal_plan"   validate:"omitempty,oneof=none breakfast all"`
	Phone      string `json:"phone"       validate:"omitempty,numeric"`
}

type passwords struct {
	Current string `json:"current_password" validate:"required"`
	Next    string `json:"new_password"     validate:"required,nefield=Current"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    stay
		wantMsg string
	}{
		{
			name: "valid date only",
			data: stay{HomestayID: "HS001", CheckIn: "2024-03-10", Rooms: 1},
		},
		{
			name: "valid timestamp",
			data: stay{HomestayID: "HS001", CheckIn: "2024-03-10T14:00:00+05:30", Rooms: 2, MealPlan: "all"},
		},
		{
			name:    "missing field uses json name",
			data:    stay{CheckIn: "2024-03-10", Rooms: 1},
			wantMsg: "homestay_id is required",
		},
		{
			name:    "bad stay date",
			data:    stay{HomestayID: "HS001", CheckIn: "10/03/2024", Rooms: 1},
			wantMsg: "check_in must be an RFC3339 timestamp or a YYYY-MM-DD date",
		},
		{
			name:    "rooms below one",
			data:    stay{HomestayID: "HS001", CheckIn: "2024-03-10"},
			wantMsg: "rooms must be greater than or equal to 1",
		},
		{
			name:    "unknown meal plan",
			data:    stay{HomestayID: "HS001", CheckIn: "2024-03-10", Rooms: 1, MealPlan: "dinner"},
			wantMsg: "meal_plan must be one of none breakfast all",
		},
		{
			name:    "non numeric phone",
			data:    stay{HomestayID: "HS001", CheckIn: "2024-03-10", Rooms: 1, Phone: "98-765"},
			wantMsg: "phone must contain digits only",
		},
		{
			name:    "too long",
			data:    stay{HomestayID: "HS0000000001", CheckIn: "2024-03-10", Rooms: 1},
			wantMsg: "homestay_id must be less than or equal to 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateStruct_NotEqualField(t *testing.T) {
	err := validator.ValidateStruct(&passwords{Current: "same-secret", Next: "same-secret"})

	require.Error(t, err)
	assert.Equal(t, "new_password must differ from Current", err.Error())

	assert.NoError(t, validator.ValidateStruct(&passwords{Current: "old-secret", Next: "new-secret"}))
}

func TestValidate(t *testing.T) {
	t.Run("decodes and validates", func(t *testing.T) {
		got := stay{}

		err := validator.Validate(strings.NewReader(`{"homestay_id":"HS001","check_in":"2024-03-10","rooms":1}`), &got)

		require.NoError(t, err)
		assert.Equal(t, "HS001", got.HomestayID)
	})

	t.Run("malformed body", func(t *testing.T) {
		got := stay{}

		err := validator.Validate(strings.NewReader(`{"homestay_id":`), &got)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Contains(t, err.Error(), "failed to decode request body")
	})

	t.Run("valid json failing rules", func(t *testing.T) {
		got := stay{}

		err := validator.Validate(strings.NewReader(`{"check_in":"2024-03-10","rooms":1}`), &got)

		require.Error(t, err)
		assert.Equal(t, "homestay_id is required", err.Error())
	})
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("3f1c2b9e-8d4a-4c7e-9b1a-2f6d5e4c3b2a", "id", "uuid"))

	err := validator.ValidateVar("not-a-uuid", "id", "uuid")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "id must be a valid UUID", err.Error())
}
