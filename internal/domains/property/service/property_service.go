package service

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
	"realestate-backend/internal/domains/property/usecase"
	"realestate-backend/pkg/cache"
	"realestate-backend/pkg/logger"

	"github.com/shopspring/decimal"
)

const (
	listCachePrefix  = "properties:list"
	listCachePattern = listCachePrefix + ":*"
)

// PropertyService wires the use cases together and caches listing pages.
// Cache failures are logged and never fail a request. Listing keys carry a
// generation that every write bumps, so a page computed before a write can
// never be served after it.
type PropertyService struct {
	createProperty *usecase.CreatePropertyUseCase
	addImage       *usecase.AddPropertyImageUseCase
	changePrice    *usecase.ChangePriceUseCase
	updateProperty *usecase.UpdatePropertyUseCase
	listProperties *usecase.ListPropertiesUseCase
	getProperty    *usecase.GetPropertyUseCase
	createOwner    *usecase.CreateOwnerUseCase
	getOwner       *usecase.GetOwnerUseCase

	cache   cache.Cache
	listTTL time.Duration
	listGen atomic.Uint64
}

var _ Service = (*PropertyService)(nil)

// NewPropertyService builds the facade. c may be nil to disable caching.
func NewPropertyService(repo repository.Repository, owners repository.OwnerRepository, c cache.Cache, listTTL time.Duration) *PropertyService {
	return &PropertyService{
		createProperty: usecase.NewCreatePropertyUseCase(repo),
		addImage:       usecase.NewAddPropertyImageUseCase(repo),
		changePrice:    usecase.NewChangePriceUseCase(repo),
		updateProperty: usecase.NewUpdatePropertyUseCase(repo),
		listProperties: usecase.NewListPropertiesUseCase(repo),
		getProperty:    usecase.NewGetPropertyUseCase(repo),
		createOwner:    usecase.NewCreateOwnerUseCase(owners),
		getOwner:       usecase.NewGetOwnerUseCase(owners),
		cache:          c,
		listTTL:        listTTL,
	}
}

// ============================================
// COMMANDS
// ============================================

func (s *PropertyService) CreateProperty(ctx context.Context, in model.CreatePropertyInput) (int64, string, error) {
	p, err := s.createProperty.Execute(ctx, in)
	if err != nil {
		return 0, "", err
	}
	s.invalidateListings(ctx)
	return p.ID(), p.Code(), nil
}

func (s *PropertyService) AddImage(ctx context.Context, propertyID int64, in model.AddImageInput) (int64, error) {
	id, err := s.addImage.Execute(ctx, propertyID, in)
	if err != nil {
		return 0, err
	}
	s.invalidateListings(ctx)
	return id, nil
}

func (s *PropertyService) ChangePrice(ctx context.Context, propertyID int64, in model.ChangePriceInput) error {
	err := s.changePrice.Execute(ctx, propertyID, in)
	// The price may be saved even when the trace failed.
	if err == nil || model.GetErrorCode(err) == model.CodeTraceRecordingFailed {
		s.invalidateListings(ctx)
	}
	return err
}

func (s *PropertyService) UpdateProperty(ctx context.Context, propertyID int64, in model.UpdatePropertyInput) error {
	if err := s.updateProperty.Execute(ctx, propertyID, in); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *PropertyService) CreateOwner(ctx context.Context, in model.CreateOwnerInput) (*model.OwnerResponse, error) {
	o, err := s.createOwner.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	resp := model.OwnerResponseFrom(o)
	return &resp, nil
}

// ============================================
// QUERIES
// ============================================

// ListProperties - cache-aside over the listing use case
func (s *PropertyService) ListProperties(ctx context.Context, f model.PropertyFilter) (*model.ListPropertiesResult, error) {
	key := listCacheKey(s.listGen.Load(), f)

	if s.cache != nil {
		var cached model.ListPropertiesResult
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache GET failed")
		} else if found {
			return &cached, nil
		}
	}

	result, err := s.listProperties.Execute(ctx, f)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.listTTL); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache SET failed")
		}
	}
	return result, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error) {
	return s.getProperty.Execute(ctx, id)
}

func (s *PropertyService) GetPropertyByCode(ctx context.Context, code string) (*model.PropertyDetail, error) {
	return s.getProperty.ExecuteByCode(ctx, code)
}

func (s *PropertyService) GetOwner(ctx context.Context, id int64) (*model.OwnerResponse, error) {
	o, err := s.getOwner.Execute(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := model.OwnerResponseFrom(o)
	return &resp, nil
}

// ============================================
// HELPERS
// ============================================

func (s *PropertyService) invalidateListings(ctx context.Context) {
	s.listGen.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, listCachePattern); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("Cache invalidation failed")
	}
}

func listCacheKey(gen uint64, f model.PropertyFilter) string {
	city := ""
	if f.City != nil {
		city = strings.TrimSpace(*f.City)
	}
	return cache.Key(listCachePrefix,
		"g"+strconv.FormatUint(gen, 10),
		city,
		decimalPart(f.MinPrice),
		decimalPart(f.MaxPrice),
		intPart(f.MinBedrooms),
		intPart(f.MinBathrooms),
		strconv.Itoa(f.Page),
		strconv.Itoa(f.PageSize),
	)
}

func decimalPart(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func intPart(i *int) string {
	if i == nil {
		return "-"
	}
	return strconv.Itoa(*i)
}
