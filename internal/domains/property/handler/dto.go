package handler

import (
	"errors"
	"time"

	"realestate-backend/internal/domains/property/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// ========================================
// PROPERTY DTOs
// ========================================

type CreatePropertyRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	City        *string         `json:"city,omitempty"`
	Price       decimal.Decimal `json:"price"`
	OwnerID     int64           `json:"owner_id"`
	YearBuilt   *int            `json:"year_built,omitempty"`
	Bedrooms    *int            `json:"bedrooms,omitempty"`
	Bathrooms   *int            `json:"bathrooms,omitempty"`
	AreaSqFt    *float64        `json:"area_sq_ft,omitempty"`
	Description *string         `json:"description,omitempty"`
}

func (r CreatePropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required.Error("code is required"), validation.Length(1, 50)),
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 150)),
		validation.Field(&r.Address, validation.Required.Error("address is required"), validation.Length(1, 300)),
		validation.Field(&r.City, validation.Length(0, 100)),
		validation.Field(&r.Price, validation.By(validPrice)),
		validation.Field(&r.OwnerID, validation.Required.Error("owner_id is required"), validation.Min(int64(1))),
		validation.Field(&r.YearBuilt, validation.Min(model.MinYearBuilt), validation.Max(model.MaxYearBuilt)),
		validation.Field(&r.Bedrooms, validation.Min(0), validation.Max(model.MaxRoomCount)),
		validation.Field(&r.Bathrooms, validation.Min(0), validation.Max(model.MaxRoomCount)),
		validation.Field(&r.AreaSqFt, validation.Min(0.0)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

func (r CreatePropertyRequest) ToInput() model.CreatePropertyInput {
	return model.CreatePropertyInput{
		Code:        r.Code,
		Name:        r.Name,
		Address:     r.Address,
		City:        r.City,
		Price:       r.Price,
		YearBuilt:   r.YearBuilt,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		AreaSqFt:    r.AreaSqFt,
		OwnerID:     r.OwnerID,
		Description: r.Description,
	}
}

type CreatePropertyResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

type AddImageRequest struct {
	FileURL   string  `json:"file_url"`
	IsMain    bool    `json:"is_main"`
	Caption   *string `json:"caption,omitempty"`
	SortOrder int     `json:"sort_order"`
}

func (r AddImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FileURL, validation.Required.Error("file_url is required"), validation.Length(1, 300)),
		validation.Field(&r.Caption, validation.Length(0, 200)),
	)
}

type ChangePriceRequest struct {
	NewPrice decimal.Decimal `json:"new_price"`
	Notes    *string         `json:"notes,omitempty"`
}

func (r ChangePriceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewPrice, validation.By(validPrice)),
		validation.Field(&r.Notes, validation.Length(0, 500)),
	)
}

// UpdatePropertyRequest - blank name/address keep the stored values
type UpdatePropertyRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        *string  `json:"city,omitempty"`
	YearBuilt   *int     `json:"year_built,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	AreaSqFt    *float64 `json:"area_sq_ft,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func (r UpdatePropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 150)),
		validation.Field(&r.Address, validation.Length(0, 300)),
		validation.Field(&r.City, validation.Length(0, 100)),
		validation.Field(&r.YearBuilt, validation.Min(model.MinYearBuilt), validation.Max(model.MaxYearBuilt)),
		validation.Field(&r.Bedrooms, validation.Min(0), validation.Max(model.MaxRoomCount)),
		validation.Field(&r.Bathrooms, validation.Min(0), validation.Max(model.MaxRoomCount)),
		validation.Field(&r.AreaSqFt, validation.Min(0.0)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

func (r UpdatePropertyRequest) ToInput() model.UpdatePropertyInput {
	return model.UpdatePropertyInput{
		Name:      r.Name,
		Address:   r.Address,
		City:      r.City,
		YearBuilt: r.YearBuilt,
		Bedrooms:  r.Bedrooms,
		Bathrooms: r.Bathrooms,
		AreaSqFt:  r.AreaSqFt,
	}
}

// ListPropertiesResponse is the body of GET /properties
type ListPropertiesResponse struct {
	Total int64                    `json:"total"`
	Items []model.PropertyListItem `json:"items"`
}

// ========================================
// OWNER DTOs
// ========================================

type CreateOwnerRequest struct {
	Name     string  `json:"name"`
	Address  *string `json:"address,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Birthday *string `json:"birthday,omitempty"` // YYYY-MM-DD
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func (r CreateOwnerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 150)),
		validation.Field(&r.Address, validation.Length(0, 300)),
		validation.Field(&r.PhotoURL, validation.Length(0, 300)),
		validation.Field(&r.Birthday, validation.Date(time.DateOnly).Error("birthday must be YYYY-MM-DD")),
		validation.Field(&r.Email, is.Email.Error("invalid email format"), validation.Length(0, 150)),
		validation.Field(&r.Phone, validation.Length(0, 30)),
	)
}

// ToInput assumes Validate passed.
func (r CreateOwnerRequest) ToInput() model.CreateOwnerInput {
	in := model.CreateOwnerInput{
		Name:     r.Name,
		Address:  r.Address,
		PhotoURL: r.PhotoURL,
		Email:    r.Email,
		Phone:    r.Phone,
	}
	if r.Birthday != nil && *r.Birthday != "" {
		if d, err := time.Parse(time.DateOnly, *r.Birthday); err == nil {
			in.Birthday = &d
		}
	}
	return in
}

type CreateOwnerResponse struct {
	ID int64 `json:"id"`
}

// ========================================
// HELPERS
// ========================================

func validPrice(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal")
	}
	if err := model.ValidatePrice(d); err != nil {
		return errors.New(model.GetErrorMessage(err))
	}
	return nil
}
