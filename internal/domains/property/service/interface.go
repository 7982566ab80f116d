package service

import (
	"context"

	"realestate-backend/internal/domains/property/model"
)

// Service is the application-facing facade over the property use cases.
type Service interface {
	CreateProperty(ctx context.Context, in model.CreatePropertyInput) (id int64, code string, err error)
	AddImage(ctx context.Context, propertyID int64, in model.AddImageInput) (int64, error)
	ChangePrice(ctx context.Context, propertyID int64, in model.ChangePriceInput) error
	UpdateProperty(ctx context.Context, propertyID int64, in model.UpdatePropertyInput) error
	ListProperties(ctx context.Context, f model.PropertyFilter) (*model.ListPropertiesResult, error)
	GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error)
	GetPropertyByCode(ctx context.Context, code string) (*model.PropertyDetail, error)

	CreateOwner(ctx context.Context, in model.CreateOwnerInput) (*model.OwnerResponse, error)
	GetOwner(ctx context.Context, id int64) (*model.OwnerResponse, error)
}
