package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Attribute bounds enforced by the entity. Bedrooms and bathrooms are
// stored as small unsigned counts.
const (
	MaxRoomCount = 255
	MinYearBuilt = 1
	MaxYearBuilt = 9999
)

// Prices are stored as NUMERIC(18,2).
const PriceScale = 2

var (
	MinPrice = decimal.New(1, -PriceScale)
	maxPrice = decimal.New(1, 18-PriceScale)
)

// ValidatePrice rejects prices below MinPrice, above the storage range or
// carrying more than PriceScale decimal places.
func ValidatePrice(price decimal.Decimal) error {
	if price.LessThan(MinPrice) {
		return NewInvalidInput(CodeInvalidPrice, "Price must be at least 0.01")
	}
	if !price.LessThan(maxPrice) {
		return NewInvalidInput(CodeInvalidPrice, "Price is too large")
	}
	if !price.Equal(price.Truncate(PriceScale)) {
		return NewInvalidInput(CodeInvalidPrice, "Price must have at most 2 decimal places")
	}
	return nil
}

// Property is the aggregate root for a listed real-estate asset. Fields are
// unexported so every mutation goes through a validating method.
type Property struct {
	id        int64
	code      string
	name      string
	address   string
	city      *string
	price     decimal.Decimal
	yearBuilt *int
	bedrooms  *int
	bathrooms *int
	areaSqFt  *float64
	ownerID   int64
	createdAt time.Time

	images []*PropertyImage
	traces []*PropertyTrace

	readOnly bool
}

// NewProperty validates and builds an unsaved property. Code, name and
// address are trimmed before storage.
func NewProperty(code, name, address string, ownerID int64, price decimal.Decimal) (*Property, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	if code == "" {
		return nil, NewInvalidInput(CodeInvalidCode, "Property code is required")
	}
	if name == "" {
		return nil, NewInvalidInput(CodeInvalidName, "Property name is required")
	}
	if address == "" {
		return nil, NewInvalidInput(CodeInvalidAddress, "Property address is required")
	}
	if err := ValidatePrice(price); err != nil {
		return nil, err
	}
	if ownerID <= 0 {
		return nil, NewInvalidInput(CodeInvalidOwner, "Owner id must be positive")
	}

	return &Property{
		code:      code,
		name:      name,
		address:   address,
		price:     price,
		ownerID:   ownerID,
		createdAt: time.Now().UTC(),
	}, nil
}

// ChangePrice replaces the listing price. Invalid prices are rejected and
// leave the entity untouched.
func (p *Property) ChangePrice(newPrice decimal.Decimal) error {
	if err := ValidatePrice(newPrice); err != nil {
		return err
	}
	p.price = newPrice
	return nil
}

// RecordPriceChange appends a PRICE_CHANGE trace for the current price.
func (p *Property) RecordPriceChange() (*PropertyTrace, error) {
	tr, err := NewPriceChangeTrace(p.id, p.price)
	if err != nil {
		return nil, err
	}
	p.traces = append(p.traces, tr)
	return tr, nil
}

// BasicInfo carries the descriptive attributes accepted by UpdateBasicInfo.
type BasicInfo struct {
	Name      string
	Address   string
	City      *string
	YearBuilt *int
	Bedrooms  *int
	Bathrooms *int
	AreaSqFt  *float64
}

// UpdateBasicInfo applies descriptive changes. A blank name or address keeps
// the current value; a blank city clears it; the numeric attributes are
// always overwritten, nil included. Nothing changes if any value is invalid.
func (p *Property) UpdateBasicInfo(info BasicInfo) error {
	if err := validateAttributes(info); err != nil {
		return err
	}

	if name := strings.TrimSpace(info.Name); name != "" {
		p.name = name
	}
	if address := strings.TrimSpace(info.Address); address != "" {
		p.address = address
	}
	p.city = normalizeOptional(info.City)
	p.yearBuilt = copyInt(info.YearBuilt)
	p.bedrooms = copyInt(info.Bedrooms)
	p.bathrooms = copyInt(info.Bathrooms)
	if info.AreaSqFt != nil {
		area := *info.AreaSqFt
		p.areaSqFt = &area
	} else {
		p.areaSqFt = nil
	}
	return nil
}

func validateAttributes(info BasicInfo) error {
	if y := info.YearBuilt; y != nil && (*y < MinYearBuilt || *y > MaxYearBuilt) {
		return NewInvalidInput(CodeInvalidAttribute, "Year built is out of range")
	}
	if b := info.Bedrooms; b != nil && (*b < 0 || *b > MaxRoomCount) {
		return NewInvalidInput(CodeInvalidAttribute, "Bedrooms must be between 0 and 255")
	}
	if b := info.Bathrooms; b != nil && (*b < 0 || *b > MaxRoomCount) {
		return NewInvalidInput(CodeInvalidAttribute, "Bathrooms must be between 0 and 255")
	}
	if a := info.AreaSqFt; a != nil && *a < 0 {
		return NewInvalidInput(CodeInvalidAttribute, "Area must not be negative")
	}
	return nil
}

// AddImage builds an image bound to this property and appends it to the
// in-memory collection.
func (p *Property) AddImage(fileURL string, isMain bool, caption *string, sortOrder int) (*PropertyImage, error) {
	img, err := NewPropertyImage(p.id, fileURL, isMain, caption, sortOrder)
	if err != nil {
		return nil, err
	}
	p.images = append(p.images, img)
	return img, nil
}

// AssignIdentity records the storage-assigned id and creation time. It only
// takes effect on an unsaved entity.
func (p *Property) AssignIdentity(id int64, createdAt time.Time) {
	if p.id != 0 {
		return
	}
	p.id = id
	if !createdAt.IsZero() {
		p.createdAt = createdAt
	}
}

func (p *Property) ID() int64 { return p.id }
func (p *Property) Code() string { return p.code }
func (p *Property) Name() string { return p.name }
func (p *Property) Address() string { return p.address }
func (p *Property) City() *string { return copyString(p.city) }
func (p *Property) Price() decimal.Decimal { return p.price }
func (p *Property) YearBuilt() *int { return copyInt(p.yearBuilt) }
func (p *Property) Bedrooms() *int { return copyInt(p.bedrooms) }
func (p *Property) Bathrooms() *int { return copyInt(p.bathrooms) }
func (p *Property) OwnerID() int64 { return p.ownerID }
func (p *Property) CreatedAt() time.Time { return p.createdAt }
func (p *Property) IsReadOnly() bool { return p.readOnly }
func (p *Property) Images() []*PropertyImage { return append([]*PropertyImage(nil), p.images...) }
func (p *Property) Traces() []*PropertyTrace { return append([]*PropertyTrace(nil), p.traces...) }

func (p *Property) AreaSqFt() *float64 {
	if p.areaSqFt == nil {
		return nil
	}
	a := *p.areaSqFt
	return &a
}

// PropertyState is the full field set of a stored property. Persistence
// adapters use it to rebuild entities without re-running validation.
type PropertyState struct {
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
	Images    []*PropertyImage
	Traces    []*PropertyTrace
	ReadOnly  bool
}

// RestoreProperty rebuilds a stored property from its state.
func RestoreProperty(s PropertyState) *Property {
	return &Property{
		id:        s.ID,
		code:      s.Code,
		name:      s.Name,
		address:   s.Address,
		city:      s.City,
		price:     s.Price,
		yearBuilt: s.YearBuilt,
		bedrooms:  s.Bedrooms,
		bathrooms: s.Bathrooms,
		areaSqFt:  s.AreaSqFt,
		ownerID:   s.OwnerID,
		createdAt: s.CreatedAt,
		images:    s.Images,
		traces:    s.Traces,
		readOnly:  s.ReadOnly,
	}
}

// State returns a snapshot of every field, collections included.
func (p *Property) State() PropertyState {
	return PropertyState{
		ID:        p.id,
		Code:      p.code,
		Name:      p.name,
		Address:   p.address,
		City:      p.City(),
		Price:     p.price,
		YearBuilt: p.YearBuilt(),
		Bedrooms:  p.Bedrooms(),
		Bathrooms: p.Bathrooms(),
		AreaSqFt:  p.AreaSqFt(),
		OwnerID:   p.ownerID,
		CreatedAt: p.createdAt,
		Images:    p.Images(),
		Traces:    p.Traces(),
		ReadOnly:  p.readOnly,
	}
}
