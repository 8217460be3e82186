package dto_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/shared/constant"
	"staybook/shared/dto"
	"staybook/shared/model"
	"staybook/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		want           dto.QueryParams
	}{
		{
			name:  "all parameters",
			query: "page=2&limit=20&sort_by=name&sort_dir=ASC",
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:  "sort direction is case insensitive",
			query: "sort_dir=desc",
			want:  dto.QueryParams{SortDir: dto.SortDirDesc},
		},
		{
			name:  "unknown sort direction is ignored",
			query: "sort_dir=sideways",
			want:  dto.QueryParams{},
		},
		{
			name:           "defaults when empty",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name: "no defaults when disabled",
			want: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			query:          "page=abc&limit=-10",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "zero page falls back to default",
			query:          "page=0&sort_by=price",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/homestays?"+tt.query, nil)

			got := dto.QueryParams{}
			got.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryParams_Sanitize(t *testing.T) {
	tests := []struct {
		name  string
		given dto.QueryParams
		want  dto.QueryParams
	}{
		{
			name:  "allowed column is kept",
			given: dto.QueryParams{SortBy: "price", SortDir: dto.SortDirAsc},
			want:  dto.QueryParams{SortBy: "price", SortDir: dto.SortDirAsc},
		},
		{
			name:  "unknown column falls back",
			given: dto.QueryParams{SortBy: "price; DROP TABLE homestays"},
			want:  dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirDesc},
		},
		{
			name:  "empty column falls back",
			given: dto.QueryParams{},
			want:  dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.given
			got.Sanitize("created_at", "created_at", "price", "name")

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equal with table",
			filter:    dto.Filter{Field: "homestay_id", Value: "HS001", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.homestay_id = :homestay_id",
			wantArgs:  map[string]any{"homestay_id": "HS001"},
		},
		{
			name:      "like wraps the value",
			filter:    dto.Filter{Field: "location", Value: "goa", Operator: dto.FilterOperatorLike},
			wantWhere: `LOWER(location) LIKE LOWER(:location) ESCAPE '\' `,
			wantArgs:  map[string]any{"location": "%goa%"},
		},
		{
			name:      "like matches wildcards literally",
			filter:    dto.Filter{Field: "location", Value: `50%_off\`, Operator: dto.FilterOperatorLike},
			wantWhere: `LOWER(location) LIKE LOWER(:location) ESCAPE '\' `,
			wantArgs:  map[string]any{"location": `%50\%\_off\\%`},
		},
		{
			name:      "custom argument name",
			filter:    dto.Filter{ArgName: "check_in_from", Field: "check_in", Value: 1, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "check_in >= :check_in_from",
			wantArgs:  map[string]any{"check_in_from": 1},
		},
		{
			name:      "in over a slice",
			filter:    dto.Filter{Field: "id", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id_0, :id_1) ",
			wantArgs:  map[string]any{"id_0": "a", "id_1": "b"},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "booking_date", Operator: dto.FilterIsNull},
			wantWhere: "booking_date IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "x", Value: 1, Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestAnd(t *testing.T) {
	t.Run("empty values are dropped", func(t *testing.T) {
		group := dto.And(
			dto.Filter{Field: "location", Value: "", Operator: dto.FilterOperatorLike},
			dto.Filter{Field: "price", Value: nil, Operator: dto.FilterOperatorLessEq},
		)

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("filters are joined", func(t *testing.T) {
		group := dto.And(
			dto.Filter{Field: "homestay_id", Value: "HS001", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "check_in", Value: 5, Operator: dto.FilterOperatorLess},
		)

		where, args := group.GetWhereClause()

		assert.Equal(t, "(homestay_id = :homestay_id AND check_in < :check_in)", where)
		assert.Equal(t, map[string]any{"homestay_id": "HS001", "check_in": 5}, args)
	})

	t.Run("nested groups", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.And(dto.Filter{Field: "a", Value: 1, Operator: dto.FilterOperatorEq}),
				dto.Filter{Field: "b", Value: 2, Operator: dto.FilterOperatorEq},
			},
		}

		where, _ := group.GetWhereClause()

		assert.Equal(t, "((a = :a) OR b = :b)", where)
	})
}

func TestUpload(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="Front.JPG"`)
	header.Set(constant.RequestHeaderContentType, "image/jpeg")

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/homestays", body)
	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	_, fileHeader, err := req.FormFile("image")
	require.NoError(t, err)

	upload, err := dto.NewUpload(fileHeader)
	require.NoError(t, err)

	assert.Equal(t, "Front.JPG", upload.Filename)
	assert.Equal(t, "image/jpeg", upload.ContentType)
	assert.Equal(t, int64(len("jpeg bytes")), upload.Size)
	assert.Equal(t, ".jpg", upload.Extension())

	upload.Close()

	var empty *dto.Upload
	assert.NotPanics(t, empty.Close)
}
