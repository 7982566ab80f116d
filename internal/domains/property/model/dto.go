package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================
// COMMAND INPUTS
// ============================================

// CreatePropertyInput carries a new listing. Description is accepted from
// clients but not persisted.
type CreatePropertyInput struct {
	Code        string
	Name        string
	Address     string
	City        *string
	Price       decimal.Decimal
	YearBuilt   *int
	Bedrooms    *int
	Bathrooms   *int
	AreaSqFt    *float64
	OwnerID     int64
	Description *string
}

type AddImageInput struct {
	FileURL   string
	IsMain    bool
	Caption   *string
	SortOrder int
}

type ChangePriceInput struct {
	NewPrice decimal.Decimal
	Notes    *string
}

// UpdatePropertyInput follows UpdateBasicInfo rules: blank Name/Address keep
// the stored values, every other field is overwritten.
type UpdatePropertyInput struct {
	Name      string
	Address   string
	City      *string
	YearBuilt *int
	Bedrooms  *int
	Bathrooms *int
	AreaSqFt  *float64
}

func (in UpdatePropertyInput) BasicInfo() BasicInfo {
	return BasicInfo{
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		YearBuilt: in.YearBuilt,
		Bedrooms:  in.Bedrooms,
		Bathrooms: in.Bathrooms,
		AreaSqFt:  in.AreaSqFt,
	}
}

type CreateOwnerInput struct {
	Name     string
	Address  *string
	PhotoURL *string
	Birthday *time.Time
	Email    *string
	Phone    *string
}

// ============================================
// QUERY INPUTS
// ============================================

// PropertyFilter is the conjunctive listing filter. Nil fields do not
// constrain; Page and PageSize must already be positive.
type PropertyFilter struct {
	City         *string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinBedrooms  *int
	MinBathrooms *int
	Page         int
	PageSize     int
}

// Offset returns the number of rows skipped before the requested page,
// saturating at math.MaxInt64 for pages far past the end.
func (f PropertyFilter) Offset() int64 {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	skipped, size := int64(f.Page-1), int64(f.PageSize)
	if skipped > math.MaxInt64/size {
		return math.MaxInt64
	}
	return skipped * size
}

// ============================================
// READ MODELS
// ============================================

// PropertyListItem is the flat read row returned by listings.
type PropertyListItem struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	City      *string         `json:"city"`
	Price     decimal.Decimal `json:"price"`
	YearBuilt *int            `json:"year_built"`
	Bedrooms  *int            `json:"bedrooms"`
	Bathrooms *int            `json:"bathrooms"`
	AreaSqFt  *float64        `json:"area_sq_ft"`
	OwnerID   int64           `json:"owner_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListItemFromProperty projects an entity onto the listing row shape.
func ListItemFromProperty(p *Property) PropertyListItem {
	return PropertyListItem{
		ID:        p.ID(),
		Code:      p.Code(),
		Name:      p.Name(),
		Address:   p.Address(),
		City:      p.City(),
		Price:     p.Price(),
		YearBuilt: p.YearBuilt(),
		Bedrooms:  p.Bedrooms(),
		Bathrooms: p.Bathrooms(),
		AreaSqFt:  p.AreaSqFt(),
		OwnerID:   p.OwnerID(),
		CreatedAt: p.CreatedAt(),
	}
}

// ListPropertiesResult is one page of listing rows plus the total match
// count before pagination.
type ListPropertiesResult struct {
	Items      []PropertyListItem `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// TotalPagesFor returns ceil(total/pageSize), never less than one.
func TotalPagesFor(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		return 1
	}
	return pages
}

// PropertyDetail is a single property with its images and trace history.
type PropertyDetail struct {
	PropertyListItem
	Images []ImageView `json:"images"`
	Traces []TraceView `json:"traces"`
}

// ImageView is the read shape of a PropertyImage.
type ImageView struct {
	ID         int64   `json:"id"`
	PropertyID int64   `json:"property_id"`
	FileURL    string  `json:"file_url"`
	IsMain     bool    `json:"is_main"`
	Caption    *string `json:"caption,omitempty"`
	SortOrder  int     `json:"sort_order"`
	Enabled    bool    `json:"enabled"`
}

func ImageViewFrom(img *PropertyImage) ImageView {
	s := img.State()
	return ImageView{
		ID:         s.ID,
		PropertyID: s.PropertyID,
		FileURL:    s.FileURL,
		IsMain:     s.IsMain,
		Caption:    s.Caption,
		SortOrder:  s.SortOrder,
		Enabled:    s.Enabled,
	}
}

// TraceView is the read shape of a PropertyTrace.
type TraceView struct {
	ID         int64           `json:"id"`
	PropertyID int64           `json:"property_id"`
	DateSale   *time.Time      `json:"date_sale,omitempty"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Tax        decimal.Decimal `json:"tax"`
	CreatedAt  time.Time       `json:"created_at"`
}

func TraceViewFrom(tr *PropertyTrace) TraceView {
	s := tr.State()
	return TraceView{
		ID:         s.ID,
		PropertyID: s.PropertyID,
		DateSale:   s.DateSale,
		Name:       s.Name,
		Value:      s.Value,
		Tax:        s.Tax,
		CreatedAt:  s.CreatedAt,
	}
}

type OwnerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	PhotoURL  *string   `json:"photo_url"`
	Birthday  *string   `json:"birthday"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func OwnerResponseFrom(o *Owner) OwnerResponse {
	resp := OwnerResponse{
		ID:        o.ID(),
		Name:      o.Name(),
		Address:   o.Address(),
		PhotoURL:  o.PhotoURL(),
		Email:     o.Email(),
		Phone:     o.Phone(),
		CreatedAt: o.CreatedAt(),
	}
	if b := o.Birthday(); b != nil {
		s := b.Format(time.DateOnly)
		resp.Birthday = &s
	}
	return resp
}
