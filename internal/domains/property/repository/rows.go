package repository

import (
	"time"

	"realestate-backend/internal/domains/property/model"

	"github.com/shopspring/decimal"
)

// propertyRow mirrors the properties table.
type propertyRow struct {
	ID        int64
	Code      string
	Name      string
	Address   string
	City      *string
	Price     decimal.Decimal
	YearBuilt *int
	Bedrooms  *int
	Bathrooms *int
	AreaSqFt  *float64
	OwnerID   int64
	CreatedAt time.Time
}

type imageRow struct {
	ID         int64
	PropertyID int64
	FileURL    string
	IsMain     bool
	Caption    *string
	SortOrder  int
	Enabled    bool
}

type traceRow struct {
	ID         int64
	PropertyID int64
	DateSale   *time.Time
	Name       string
	Value      decimal.Decimal
	Tax        decimal.Decimal
	CreatedAt  time.Time
}

type ownerRow struct {
	ID        int64
	Name      string
	Address   *string
	PhotoURL  *string
	Birthday  *time.Time
	Email     *string
	Phone     *string
	CreatedAt time.Time
}

// rowFromProperty builds a fresh row from every field of p.
func rowFromProperty(p *model.Property) propertyRow {
	var row propertyRow
	applyDomainFields(&row, p)
	row.ID = p.ID()
	row.CreatedAt = p.CreatedAt()
	return row
}

// applyDomainFields overwrites the domain-owned columns of dst. Identity and
// creation time are left as they are.
func applyDomainFields(dst *propertyRow, p *model.Property) {
	dst.Code = p.Code()
	dst.Name = p.Name()
	dst.Address = p.Address()
	dst.City = p.City()
	dst.Price = p.Price()
	dst.YearBuilt = p.YearBuilt()
	dst.Bedrooms = p.Bedrooms()
	dst.Bathrooms = p.Bathrooms()
	dst.AreaSqFt = p.AreaSqFt()
	dst.OwnerID = p.OwnerID()
}

func (r propertyRow) toDomain(readOnly bool) *model.Property {
	state := model.PropertyState{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Address:   r.Address,
		City:      r.City,
		Price:     r.Price,
		YearBuilt: r.YearBuilt,
		Bedrooms:  r.Bedrooms,
		Bathrooms: r.Bathrooms,
		AreaSqFt:  r.AreaSqFt,
		OwnerID:   r.OwnerID,
		CreatedAt: r.CreatedAt,
		ReadOnly:  readOnly,
	}
	return model.RestoreProperty(state)
}

func (r propertyRow) toListItem() model.PropertyListItem {
	return model.PropertyListItem{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Address:   r.Address,
		City:      r.City,
		Price:     r.Price,
		YearBuilt: r.YearBuilt,
		Bedrooms:  r.Bedrooms,
		Bathrooms: r.Bathrooms,
		AreaSqFt:  r.AreaSqFt,
		OwnerID:   r.OwnerID,
		CreatedAt: r.CreatedAt,
	}
}

func imageRowFrom(img *model.PropertyImage) imageRow {
	s := img.State()
	return imageRow{
		ID:         s.ID,
		PropertyID: s.PropertyID,
		FileURL:    s.FileURL,
		IsMain:     s.IsMain,
		Caption:    s.Caption,
		SortOrder:  s.SortOrder,
		Enabled:    s.Enabled,
	}
}

func (r imageRow) toDomain() *model.PropertyImage {
	return model.RestorePropertyImage(model.ImageState{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		FileURL:    r.FileURL,
		IsMain:     r.IsMain,
		Caption:    r.Caption,
		SortOrder:  r.SortOrder,
		Enabled:    r.Enabled,
	})
}

func traceRowFrom(tr *model.PropertyTrace) traceRow {
	s := tr.State()
	return traceRow{
		ID:         s.ID,
		PropertyID: s.PropertyID,
		DateSale:   s.DateSale,
		Name:       s.Name,
		Value:      s.Value,
		Tax:        s.Tax,
		CreatedAt:  s.CreatedAt,
	}
}

func (r traceRow) toDomain() *model.PropertyTrace {
	return model.RestorePropertyTrace(model.TraceState{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		DateSale:   r.DateSale,
		Name:       r.Name,
		Value:      r.Value,
		Tax:        r.Tax,
		CreatedAt:  r.CreatedAt,
	})
}

func ownerRowFrom(o *model.Owner) ownerRow {
	s := o.State()
	return ownerRow{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		PhotoURL:  s.PhotoURL,
		Birthday:  s.Birthday,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
	}
}

func (r ownerRow) toDomain() *model.Owner {
	return model.RestoreOwner(model.OwnerState{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		PhotoURL:  r.PhotoURL,
		Birthday:  r.Birthday,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
	})
}
