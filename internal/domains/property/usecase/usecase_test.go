package usecase_test

import (
	"context"
	"errors"
	"testing"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
	"realestate-backend/internal/domains/property/repository/mocks"
	"realestate-backend/internal/domains/property/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func newStore(t *testing.T) *repository.SQLiteRepository {
	t.Helper()
	store, err := repository.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newOwner(t *testing.T, store repository.OwnerRepository) int64 {
	t.Helper()
	o, err := usecase.NewCreateOwnerUseCase(store).Execute(context.Background(), model.CreateOwnerInput{Name: "Owner"})
	require.NoError(t, err)
	return o.ID()
}

func createInput(code string, owner int64, price int64) model.CreatePropertyInput {
	return model.CreatePropertyInput{
		Code:    code,
		Name:    "Apartment " + code,
		Address: "Street " + code,
		City:    strPtr("Bogota"),
		Price:   decimal.NewFromInt(price),
		OwnerID: owner,
	}
}

// ============================================
// CREATE
// ============================================

func TestCreateProperty(t *testing.T) {
	store := newStore(t)
	owner := newOwner(t, store)
	uc := usecase.NewCreatePropertyUseCase(store)

	in := createInput("  BOG-1 ", owner, 250000)
	in.Bedrooms = intPtr(2)
	p, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Greater(t, p.ID(), int64(0))
	assert.Equal(t, "BOG-1", p.Code())

	stored, err := store.GetByCode(context.Background(), "BOG-1", true)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 2, *stored.Bedrooms())
	assert.Equal(t, "Bogota", *stored.City())
}

func TestCreateProperty_DuplicateCode(t *testing.T) {
	store := newStore(t)
	owner := newOwner(t, store)
	uc := usecase.NewCreatePropertyUseCase(store)

	_, err := uc.Execute(context.Background(), createInput("DUP", owner, 1))
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), createInput(" DUP", owner, 2))

	assert.True(t, model.IsConflict(err))
	items, total, err := store.List(context.Background(), model.PropertyFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestCreateProperty_InvalidInputNeverReachesStorage(t *testing.T) {
	repo := new(mocks.Store)
	uc := usecase.NewCreatePropertyUseCase(repo)

	_, err := uc.Execute(context.Background(), createInput("X", 1, 0))
	assert.True(t, model.IsInvalidInput(err))

	in := createInput("X", 1, 10)
	in.Bathrooms = intPtr(-2)
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, model.IsInvalidInput(err))

	repo.AssertNotCalled(t, "CodeExists", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateProperty_RaceOnInsertIsConflict(t *testing.T) {
	repo := new(mocks.Store)
	repo.On("CodeExists", mock.Anything, "RACE").Return(false, nil)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*model.Property")).Return(model.NewCodeAlreadyExists("RACE"))

	_, err := usecase.NewCreatePropertyUseCase(repo).Execute(context.Background(), createInput("RACE", 1, 10))

	assert.True(t, model.IsConflict(err))
	repo.AssertExpectations(t)
}

func TestCreateProperty_MissingOwner(t *testing.T) {
	store := newStore(t)

	_, err := usecase.NewCreatePropertyUseCase(store).Execute(context.Background(), createInput("NO-OWNER", 404, 10))

	assert.True(t, model.IsInvalidInput(err))
	assert.Equal(t, model.CodeOwnerReference, model.GetErrorCode(err))
}

// ============================================
// IMAGES
// ============================================

func TestAddPropertyImage(t *testing.T) {
	store := newStore(t)
	owner := newOwner(t, store)
	p, err := usecase.NewCreatePropertyUseCase(store).Execute(context.Background(), createInput("IMG", owner, 10))
	require.NoError(t, err)
	uc := usecase.NewAddPropertyImageUseCase(store)

	first, err := uc.Execute(context.Background(), p.ID(), model.AddImageInput{FileURL: "https://cdn/a.jpg", IsMain: true})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), p.ID(), model.AddImageInput{FileURL: "https://cdn/b.jpg", IsMain: true, Caption: strPtr("Pool")})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	images, err := store.ListImages(context.Background(), p.ID())
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.True(t, images[0].IsMain() && images[1].IsMain(), "main flag is not exclusive")

	_, err = uc.Execute(context.Background(), p.ID(), model.AddImageInput{FileURL: " "})
	assert.True(t, model.IsInvalidInput(err))

	_, err = uc.Execute(context.Background(), 9999, model.AddImageInput{FileURL: "https://cdn/c.jpg"})
	assert.True(t, model.IsNotFound(err))
}

// ============================================
// PRICE CHANGE
// ============================================

func TestChangePrice_AppendsTrace(t *testing.T) {
	store := newStore(t)
	owner := newOwner(t, store)
	p, err := usecase.NewCreatePropertyUseCase(store).Execute(context.Background(), createInput("PC", owner, 100))
	require.NoError(t, err)
	uc := usecase.NewChangePriceUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), p.ID(), model.ChangePriceInput{NewPrice: decimal.NewFromInt(150), Notes: strPtr("market")}))
	require.NoError(t, uc.Execute(context.Background(), p.ID(), model.ChangePriceInput{NewPrice: decimal.RequireFromString("175.5")}))

	stored, err := store.GetByID(context.Background(), p.ID(), true)
	require.NoError(t, err)
	assert.True(t, stored.Price().Equal(decimal.RequireFromString("175.5")))

	traces, err := store.ListTraces(context.Background(), p.ID())
	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.Equal(t, model.TraceKindPriceChange, traces[0].Name())
	assert.True(t, traces[0].Value().Equal(decimal.NewFromInt(150)))
	assert.True(t, traces[1].Value().Equal(decimal.RequireFromString("175.5")))
	assert.True(t, traces[1].Tax().IsZero())
	assert.Nil(t, traces[1].DateSale())
}

func TestChangePrice_RejectedPriceLeavesNoTrace(t *testing.T) {
	store := newStore(t)
	owner := newOwner(t, store)
	p, err := usecase.NewCreatePropertyUseCase(store).Execute(context.Background(), createInput("PC0", owner, 100))
	require.NoError(t, err)

	err = usecase.NewChangePriceUseCase(store).Execute(context.Background(), p.ID(), model.ChangePriceInput{NewPrice: decimal.NewFromInt(-1)})
	assert.True(t, model.IsInvalidInput(err))

	traces, err := store.ListTraces(context.Background(), p.ID())
	require.NoError(t, err)
	assert.Empty(t, traces)
	stored, err := store.GetByID(context.Background(), p.ID(), true)
	require.NoError(t, err)
	assert.True(t, stored.Price().Equal(decimal.NewFromInt(100)))
}

func TestChangePrice_UnknownProperty(t *testing.T) {
	err := usecase.NewChangePriceUseCase(newStore(t)).Execute(context.Background(), 77, model.ChangePriceInput{NewPrice: decimal.NewFromInt(1)})
	assert.True(t, model.IsNotFound(err))
}

func loadedProperty(id int64) *model.Property {
	return model.RestoreProperty(model.PropertyState{
		ID: id, Code: "M", Name: "n", Address: "a", Price: decimal.NewFromInt(100), OwnerID: 1,
	})
}

func TestChangePrice_TraceFailureAfterSave(t *testing.T) {
	repo := new(mocks.Store)
	repo.On("GetByID", mock.Anything, int64(5), false).Return(loadedProperty(5), nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Property")).Return(nil)
	repo.On("AddTrace", mock.Anything, mock.AnythingOfType("*model.PropertyTrace")).Return(model.NewStorageError("add trace", errors.New("disk full")))

	err := usecase.NewChangePriceUseCase(repo).Execute(context.Background(), 5, model.ChangePriceInput{NewPrice: decimal.NewFromInt(120)})

	assert.Equal(t, model.CodeTraceRecordingFailed, model.GetErrorCode(err))
	repo.AssertCalled(t, "Update", mock.Anything, mock.MatchedBy(func(p *model.Property) bool {
		return p.Price().Equal(decimal.NewFromInt(120))
	}))
}

func TestChangePrice_VanishedRow(t *testing.T) {
	repo := new(mocks.Store)
	repo.On("GetByID", mock.Anything, int64(5), false).Return(loadedProperty(5), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(model.ErrPropertyGone)

	err := usecase.NewChangePriceUseCase(repo).Execute(context.Background(), 5, model.ChangePriceInput{NewPrice: decimal.NewFromInt(120)})

	assert.ErrorIs(t, err, model.ErrPropertyGone)
	repo.AssertNotCalled(t, "AddTrace", mock.Anything, mock.Anything)
}

func TestChangePrice_ConcurrencyConflict(t *testing.T) {
	repo := new(mocks.Store)
	repo.On("GetByID", mock.Anything, int64(5), false).Return(loadedProperty(5), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(model.NewConcurrencyConflict(errors.New("40001")))

	err := usecase.NewChangePriceUseCase(repo).Execute(context.Background(), 5, model.ChangePriceInput{NewPrice: decimal.NewFromInt(120)})

	assert.True(t, model.IsConflict(err))
	assert.True(t, model.IsRetryable(err))
}

// ============================================
// UPDATE
// ============================================

func TestUpdateProperty(t *testing.T) {
	store := newStore(t)
	owner := newOwner(t, store)
	in := createInput("UP", owner, 100)
	in.Bedrooms = intPtr(4)
	p, err := usecase.NewCreatePropertyUseCase(store).Execute(context.Background(), in)
	require.NoError(t, err)
	uc := usecase.NewUpdatePropertyUseCase(store)

	require.NoError(t, uc.Execute(context.Background(), p.ID(), model.UpdatePropertyInput{
		Name:      "",
		Address:   "New Street 9",
		City:      strPtr(""),
		YearBuilt: intPtr(2010),
		Bathrooms: intPtr(2),
	}))

	stored, err := store.GetByID(context.Background(), p.ID(), true)
	require.NoError(t, err)
	assert.Equal(t, "Apartment UP", stored.Name())
	assert.Equal(t, "New Street 9", stored.Address())
	assert.Nil(t, stored.City())
	assert.Nil(t, stored.Bedrooms())
	assert.Equal(t, 2010, *stored.YearBuilt())
	assert.True(t, stored.Price().Equal(decimal.NewFromInt(100)))

	err = uc.Execute(context.Background(), p.ID(), model.UpdatePropertyInput{YearBuilt: intPtr(-3)})
	assert.True(t, model.IsInvalidInput(err))

	err = uc.Execute(context.Background(), 31337, model.UpdatePropertyInput{})
	assert.True(t, model.IsNotFound(err))
}

// ============================================
// LIST & DETAIL
// ============================================

func TestListProperties(t *testing.T) {
	store := newStore(t)
	owner := newOwner(t, store)
	create := usecase.NewCreatePropertyUseCase(store)
	for _, code := range []string{"L1", "L2", "L3"} {
		_, err := create.Execute(context.Background(), createInput(code, owner, 100))
		require.NoError(t, err)
	}
	uc := usecase.NewListPropertiesUseCase(store)

	res, err := uc.Execute(context.Background(), model.PropertyFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "L1", res.Items[0].Code)

	res, err = uc.Execute(context.Background(), model.PropertyFilter{City: strPtr("Nowhere"), Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 1, res.TotalPages)

	_, err = uc.Execute(context.Background(), model.PropertyFilter{Page: 0, PageSize: 2})
	assert.Equal(t, model.CodeInvalidPageParams, model.GetErrorCode(err))
}

func TestListProperties_StorageFailure(t *testing.T) {
	repo := new(mocks.Store)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), model.NewStorageError("list properties", context.DeadlineExceeded))

	_, err := usecase.NewListPropertiesUseCase(repo).Execute(context.Background(), model.PropertyFilter{Page: 1, PageSize: 20})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetProperty(t *testing.T) {
	store := newStore(t)
	owner := newOwner(t, store)
	p, err := usecase.NewCreatePropertyUseCase(store).Execute(context.Background(), createInput("DET", owner, 100))
	require.NoError(t, err)
	_, err = usecase.NewAddPropertyImageUseCase(store).Execute(context.Background(), p.ID(), model.AddImageInput{FileURL: "https://cdn/d.jpg"})
	require.NoError(t, err)
	require.NoError(t, usecase.NewChangePriceUseCase(store).Execute(context.Background(), p.ID(), model.ChangePriceInput{NewPrice: decimal.NewFromInt(110)}))
	uc := usecase.NewGetPropertyUseCase(store)

	detail, err := uc.Execute(context.Background(), p.ID())
	require.NoError(t, err)
	assert.Equal(t, "DET", detail.Code)
	assert.Len(t, detail.Images, 1)
	assert.Len(t, detail.Traces, 1)

	byCode, err := uc.ExecuteByCode(context.Background(), " DET ")
	require.NoError(t, err)
	assert.Equal(t, detail.ID, byCode.ID)

	_, err = uc.ExecuteByCode(context.Background(), "NOPE")
	assert.True(t, model.IsNotFound(err))
	_, err = uc.Execute(context.Background(), 999)
	assert.True(t, model.IsNotFound(err))
}

func TestOwners(t *testing.T) {
	store := newStore(t)

	_, err := usecase.NewCreateOwnerUseCase(store).Execute(context.Background(), model.CreateOwnerInput{Name: " "})
	assert.True(t, model.IsInvalidInput(err))

	id := newOwner(t, store)
	o, err := usecase.NewGetOwnerUseCase(store).Execute(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Owner", o.Name())

	_, err = usecase.NewGetOwnerUseCase(store).Execute(context.Background(), id+100)
	assert.True(t, model.IsNotFound(err))
}
