package repository

import (
	"context"

	"realestate-backend/internal/domains/property/model"
)

// Repository is the persistence port of the property aggregate.
type Repository interface {
	// Add inserts p and assigns its storage id. A duplicate code yields a
	// Conflict, a missing owner yields InvalidInput.
	Add(ctx context.Context, p *model.Property) error
	// Update overwrites the domain-owned columns of an existing row. A
	// vanished row yields model.ErrPropertyGone.
	Update(ctx context.Context, p *model.Property) error
	// GetByID returns nil, nil when no row matches. Entities loaded with
	// readOnly set are rejected by Update.
	GetByID(ctx context.Context, id int64, readOnly bool) (*model.Property, error)
	GetByCode(ctx context.Context, code string, readOnly bool) (*model.Property, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	// List applies f conjunctively and returns one page ordered by id
	// descending together with the total match count.
	List(ctx context.Context, f model.PropertyFilter) ([]model.PropertyListItem, int64, error)

	AddImage(ctx context.Context, img *model.PropertyImage) error
	ListImages(ctx context.Context, propertyID int64) ([]*model.PropertyImage, error)
	AddTrace(ctx context.Context, tr *model.PropertyTrace) error
	ListTraces(ctx context.Context, propertyID int64) ([]*model.PropertyTrace, error)
}

// OwnerRepository persists owners.
type OwnerRepository interface {
	AddOwner(ctx context.Context, o *model.Owner) error
	// GetOwnerByID returns nil, nil when no row matches.
	GetOwnerByID(ctx context.Context, id int64) (*model.Owner, error)
}

// Store is a storage adapter serving both ports.
type Store interface {
	Repository
	OwnerRepository
	Ping(ctx context.Context) error
	Close() error
}
