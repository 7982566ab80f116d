package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TraceKindPriceChange names traces appended by a price change.
const TraceKindPriceChange = "PRICE_CHANGE"

// PropertyTrace is an append-only history record of a property event.
type PropertyTrace struct {
	id         int64
	propertyID int64
	dateSale   *time.Time
	name       string
	value      decimal.Decimal
	tax        decimal.Decimal
	createdAt  time.Time
}

// NewPropertyTrace validates and builds an unsaved trace.
func NewPropertyTrace(propertyID int64, name string, value, tax decimal.Decimal, dateSale *time.Time) (*PropertyTrace, error) {
	if propertyID <= 0 {
		return nil, NewInvalidInput(CodeInvalidPropertyID, "Property id must be positive")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewInvalidInput(CodeInvalidTraceName, "Trace name is required")
	}
	var sale *time.Time
	if dateSale != nil {
		d := dateSale.UTC()
		sale = &d
	}
	return &PropertyTrace{
		propertyID: propertyID,
		dateSale:   sale,
		name:       name,
		value:      value,
		tax:        tax,
		createdAt:  time.Now().UTC(),
	}, nil
}

// NewPriceChangeTrace records a price change to newPrice with no tax and no
// sale date.
func NewPriceChangeTrace(propertyID int64, newPrice decimal.Decimal) (*PropertyTrace, error) {
	return NewPropertyTrace(propertyID, TraceKindPriceChange, newPrice, decimal.Zero, nil)
}

// AssignIdentity records the storage-assigned id of an unsaved trace.
func (t *PropertyTrace) AssignIdentity(id int64) {
	if t.id == 0 {
		t.id = id
	}
}

func (t *PropertyTrace) ID() int64 { return t.id }
func (t *PropertyTrace) PropertyID() int64 { return t.propertyID }
func (t *PropertyTrace) Name() string { return t.name }
func (t *PropertyTrace) Value() decimal.Decimal { return t.value }
func (t *PropertyTrace) Tax() decimal.Decimal { return t.tax }
func (t *PropertyTrace) CreatedAt() time.Time { return t.createdAt }

func (t *PropertyTrace) DateSale() *time.Time {
	if t.dateSale == nil {
		return nil
	}
	d := *t.dateSale
	return &d
}

type TraceState struct {
	ID         int64
	PropertyID int64
	DateSale   *time.Time
	Name       string
	Value      decimal.Decimal
	Tax        decimal.Decimal
	CreatedAt  time.Time
}

// RestorePropertyTrace rebuilds a stored trace without validation.
func RestorePropertyTrace(s TraceState) *PropertyTrace {
	tr := &PropertyTrace{
		id:         s.ID,
		propertyID: s.PropertyID,
		name:       s.Name,
		value:      s.Value,
		tax:        s.Tax,
		createdAt:  s.CreatedAt,
	}
	if s.DateSale != nil {
		d := *s.DateSale
		tr.dateSale = &d
	}
	return tr
}

func (t *PropertyTrace) State() TraceState {
	return TraceState{
		ID:         t.id,
		PropertyID: t.propertyID,
		DateSale:   t.DateSale(),
		Name:       t.name,
		Value:      t.value,
		Tax:        t.tax,
		CreatedAt:  t.createdAt,
	}
}
