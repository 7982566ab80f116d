package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"realestate-backend/internal/domains/property/model"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateProperty(ctx context.Context, in model.CreatePropertyInput) (int64, string, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

func (m *mockService) AddImage(ctx context.Context, id int64, in model.AddImageInput) (int64, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockService) ChangePrice(ctx context.Context, id int64, in model.ChangePriceInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockService) UpdateProperty(ctx context.Context, id int64, in model.UpdatePropertyInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockService) ListProperties(ctx context.Context, f model.PropertyFilter) (*model.ListPropertiesResult, error) {
	args := m.Called(ctx, f)
	res, _ := args.Get(0).(*model.ListPropertiesResult)
	return res, args.Error(1)
}

func (m *mockService) GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.PropertyDetail)
	return res, args.Error(1)
}

func (m *mockService) GetPropertyByCode(ctx context.Context, code string) (*model.PropertyDetail, error) {
	args := m.Called(ctx, code)
	res, _ := args.Get(0).(*model.PropertyDetail)
	return res, args.Error(1)
}

func (m *mockService) CreateOwner(ctx context.Context, in model.CreateOwnerInput) (*model.OwnerResponse, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*model.OwnerResponse)
	return res, args.Error(1)
}

func (m *mockService) GetOwner(ctx context.Context, id int64) (*model.OwnerResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.OwnerResponse)
	return res, args.Error(1)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPropertyHandler(svc)
	oh := NewOwnerHandler(svc)

	r.POST("/properties", h.CreateProperty)
	r.GET("/properties", h.ListProperties)
	r.GET("/properties/code/:code", h.GetPropertyByCode)
	r.GET("/properties/:id", h.GetProperty)
	r.PUT("/properties/:id", h.UpdateProperty)
	r.PUT("/properties/:id/price", h.ChangePrice)
	r.POST("/properties/:id/images", h.AddImage)
	r.POST("/owners", oh.CreateOwner)
	r.GET("/owners/:id", oh.GetOwner)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCreateProperty_Created(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateProperty", mock.Anything, mock.MatchedBy(func(in model.CreatePropertyInput) bool {
		return in.Code == "P-1" && in.OwnerID == 7 && in.Price.Equal(decimal.NewFromInt(250000)) && *in.Bedrooms == 3
	})).Return(int64(42), "P-1", nil)

	w := do(setupRouter(svc), http.MethodPost, "/properties",
		`{"code":"P-1","name":"House","address":"1 Main St","price":"250000","owner_id":7,"bedrooms":3}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":42,"code":"P-1"}`, string(env.Data))
	svc.AssertExpectations(t)
}

func TestCreateProperty_ValidationFailure(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	cases := map[string]string{
		"missing code":   `{"name":"n","address":"a","price":"1","owner_id":1}`,
		"zero price":     `{"code":"c","name":"n","address":"a","price":"0","owner_id":1}`,
		"sub-cent price": `{"code":"c","name":"n","address":"a","price":"0.001","owner_id":1}`,
		"three decimals": `{"code":"c","name":"n","address":"a","price":"100.005","owner_id":1}`,
		"missing owner":  `{"code":"c","name":"n","address":"a","price":"1"}`,
		"too many rooms": `{"code":"c","name":"n","address":"a","price":"1","owner_id":1,"bedrooms":300}`,
		"malformed json": `{"code":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/properties", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, decode(t, w).Success)
		})
	}
	svc.AssertNotCalled(t, "CreateProperty", mock.Anything, mock.Anything)
}

func TestCreateProperty_DomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"conflict", model.NewCodeAlreadyExists("P-1"), http.StatusConflict, model.CodeCodeAlreadyExists},
		{"missing owner", model.ErrOwnerReference, http.StatusBadRequest, model.CodeOwnerReference},
		{"storage", model.NewStorageError("add property", assert.AnError), http.StatusInternalServerError, model.CodeStorageFailure},
		{"canceled", model.NewStorageError("add property", context.Canceled), model.StatusClientClosedRequest, model.CodeOperationCanceled},
		{"timeout", model.NewStorageError("add property", context.DeadlineExceeded), http.StatusGatewayTimeout, model.CodeOperationTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("CreateProperty", mock.Anything, mock.Anything).Return(int64(0), "", tc.err)

			w := do(setupRouter(svc), http.MethodPost, "/properties",
				`{"code":"P-1","name":"n","address":"a","price":"10","owner_id":1}`)

			assert.Equal(t, tc.status, w.Code)
			env := decode(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestStorageErrorHidesDetail(t *testing.T) {
	svc := new(mockService)
	svc.On("GetProperty", mock.Anything, int64(5)).
		Return(nil, model.NewStorageError("get property", assert.AnError))

	w := do(setupRouter(svc), http.MethodGet, "/properties/5", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	assert.Equal(t, "Internal server error", decode(t, w).Error.Message)
}

func TestChangePrice(t *testing.T) {
	svc := new(mockService)
	svc.On("ChangePrice", mock.Anything, int64(9), mock.MatchedBy(func(in model.ChangePriceInput) bool {
		return in.NewPrice.Equal(decimal.RequireFromString("199.99")) && in.Notes != nil && *in.Notes == "drop"
	})).Return(nil)
	svc.On("ChangePrice", mock.Anything, int64(10), mock.Anything).Return(model.NewPropertyNotFound(int64(10)))
	r := setupRouter(svc)

	w := do(r, http.MethodPut, "/properties/9/price", `{"new_price":"199.99","notes":"drop"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodPut, "/properties/10/price", `{"new_price":"5"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/properties/9/price", `{"new_price":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/properties/9/price", `{"new_price":"19.999"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/properties/abc/price", `{"new_price":"5"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.CodeInvalidPropertyID, decode(t, w).Error.Code)

	svc.AssertExpectations(t)
}

func TestUpdateProperty(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdateProperty", mock.Anything, int64(3), mock.MatchedBy(func(in model.UpdatePropertyInput) bool {
		return in.Name == "" && in.City != nil && *in.City == "Austin" && in.Bedrooms == nil
	})).Return(nil)
	svc.On("UpdateProperty", mock.Anything, int64(4), mock.Anything).Return(model.ErrPropertyGone)
	r := setupRouter(svc)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPut, "/properties/3", `{"city":"Austin"}`).Code)

	w := do(r, http.MethodPut, "/properties/4", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.CodePropertyGone, decode(t, w).Error.Code)
	svc.AssertExpectations(t)
}

func TestAddImage(t *testing.T) {
	svc := new(mockService)
	svc.On("AddImage", mock.Anything, int64(2), model.AddImageInput{FileURL: "https://img/1.jpg", IsMain: true, SortOrder: 1}).
		Return(int64(11), nil)
	r := setupRouter(svc)

	w := do(r, http.MethodPost, "/properties/2/images", `{"file_url":"https://img/1.jpg","is_main":true,"sort_order":1}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"image_id":11}`, string(decode(t, w).Data))

	w = do(r, http.MethodPost, "/properties/2/images", `{"is_main":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestListProperties_FiltersAndHeaders(t *testing.T) {
	svc := new(mockService)
	svc.On("ListProperties", mock.Anything, mock.MatchedBy(func(f model.PropertyFilter) bool {
		return f.Page == 2 && f.PageSize == 10 &&
			f.City != nil && *f.City == "Austin" &&
			f.MinPrice != nil && f.MinPrice.Equal(decimal.NewFromInt(100)) &&
			f.MaxPrice == nil &&
			f.MinBedrooms != nil && *f.MinBedrooms == 2 &&
			f.MinBathrooms == nil
	})).Return(&model.ListPropertiesResult{
		Items:      []model.PropertyListItem{{ID: 5, Code: "C5"}},
		Total:      25,
		Page:       2,
		PageSize:   10,
		TotalPages: 3,
	}, nil)

	w := do(setupRouter(svc), http.MethodGet, "/properties?page=2&page_size=10&city=Austin&min_price=100&bedrooms=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "25", w.Header().Get("X-Total-Count"))

	link := w.Header().Get("Link")
	assert.Contains(t, link, `rel="prev"`)
	assert.Contains(t, link, `rel="next"`)
	assert.Contains(t, link, "page=1")
	assert.Contains(t, link, "page=3")
	assert.Contains(t, link, "city=Austin")
	assert.Contains(t, link, "min_price=100")

	var body struct {
		Data struct {
			Total int64 `json:"total"`
			Items []struct {
				ID   int64  `json:"id"`
				Code string `json:"code"`
			} `json:"items"`
		} `json:"data"`
		Meta struct {
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(25), body.Data.Total)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "C5", body.Data.Items[0].Code)
	assert.Equal(t, 3, body.Meta.TotalPages)
}

func TestListProperties_ClampsPaging(t *testing.T) {
	cases := map[string]struct {
		query    string
		page     int
		pageSize int
	}{
		"defaults":      {"", 1, DefaultPageSize},
		"negative page": {"?page=-3", 1, DefaultPageSize},
		"zero size":     {"?page_size=0", 1, DefaultPageSize},
		"oversized":     {"?page_size=500", 1, DefaultPageSize},
		"max size":      {"?page_size=200", 1, MaxPageSize},
		"camel case":    {"?pageSize=5", 1, 5},
		"upper case":    {"?PAGE=1&PageSize=7", 1, 7},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("ListProperties", mock.Anything, mock.MatchedBy(func(f model.PropertyFilter) bool {
				return f.Page == tc.page && f.PageSize == tc.pageSize
			})).Return(&model.ListPropertiesResult{Items: []model.PropertyListItem{}, Page: tc.page, PageSize: tc.pageSize, TotalPages: 1}, nil)

			w := do(setupRouter(svc), http.MethodGet, "/properties"+tc.query, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("Link"))
			svc.AssertExpectations(t)
		})
	}
}

func TestListProperties_PagePastTheEnd(t *testing.T) {
	const page = 1 << 62
	svc := new(mockService)
	svc.On("ListProperties", mock.Anything, mock.MatchedBy(func(f model.PropertyFilter) bool {
		return f.Page == page && f.Offset() > 0
	})).Return(&model.ListPropertiesResult{Items: []model.PropertyListItem{}, Total: 3, Page: page, PageSize: DefaultPageSize, TotalPages: 1}, nil)

	w := do(setupRouter(svc), http.MethodGet, "/properties?page=4611686018427387904", "")

	assert.Equal(t, http.StatusOK, w.Code)
	link := w.Header().Get("Link")
	assert.Contains(t, link, `rel="prev"`)
	assert.NotContains(t, link, `rel="next"`)
	svc.AssertExpectations(t)
}

func TestListProperties_RejectsNonNumericFilters(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	for _, q := range []string{"page=x", "page_size=y", "min_price=cheap", "bathrooms=two"} {
		w := do(r, http.MethodGet, "/properties?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	svc.AssertNotCalled(t, "ListProperties", mock.Anything, mock.Anything)
}

func TestPaginationLinks_DropsPagingParamsCaseInsensitive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/properties?PageSize=5&Page=1&city=Reno", nil)

	link := paginationLinks(req, 1, 5, 2)

	assert.Equal(t, `<http://example.com/properties?city=Reno&page=2&page_size=5>; rel="next"`, link)
	assert.Empty(t, paginationLinks(req, 1, 5, 1))
}

func TestGetPropertyByCode(t *testing.T) {
	svc := new(mockService)
	detail := &model.PropertyDetail{PropertyListItem: model.PropertyListItem{ID: 1, Code: "X"}}
	svc.On("GetPropertyByCode", mock.Anything, "X").Return(detail, nil)
	svc.On("GetPropertyByCode", mock.Anything, "Y").Return(nil, model.NewPropertyNotFound("Y"))
	r := setupRouter(svc)

	w := do(r, http.MethodGet, "/properties/code/X", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"code":"X"`)

	w = do(r, http.MethodGet, "/properties/code/Y", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnerEndpoints(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateOwner", mock.Anything, mock.MatchedBy(func(in model.CreateOwnerInput) bool {
		return in.Name == "Jane" && in.Birthday != nil && in.Birthday.Year() == 1980
	})).Return(&model.OwnerResponse{ID: 3, Name: "Jane"}, nil)
	svc.On("GetOwner", mock.Anything, int64(3)).Return(&model.OwnerResponse{ID: 3, Name: "Jane"}, nil)
	svc.On("GetOwner", mock.Anything, int64(4)).Return(nil, model.NewOwnerNotFound(4))
	r := setupRouter(svc)

	w := do(r, http.MethodPost, "/owners", `{"name":"Jane","birthday":"1980-05-01","email":"jane@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":3}`, string(decode(t, w).Data))

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/owners", `{"name":"J","email":"nope"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/owners", `{"name":"J","birthday":"01/05/1980"}`).Code)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/owners/3", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/owners/4", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/owners/zero", "").Code)
	svc.AssertExpectations(t)
}
