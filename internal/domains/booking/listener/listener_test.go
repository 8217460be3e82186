package listener_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domains/booking/listener"
	"staybook/internal/domains/booking/model/dto"
)

func TestAudit(t *testing.T) {
	valid, err := json.Marshal(dto.BookingCreated{
		ID:         "b-1",
		HomestayID: "HS001",
		CheckIn:    time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
		TotalPrice: 2940,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		body    []byte
		wantErr bool
	}{
		{name: "valid event", body: valid},
		{name: "malformed json", body: []byte("{"), wantErr: true},
		{name: "missing id", body: []byte(`{"homestay_id":"HS001"}`), wantErr: true},
	}

	handler := listener.Audit()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handler("b-1", tt.body)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
