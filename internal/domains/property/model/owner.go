package model

import (
	"strings"
	"time"
)

// Owner is a person or company owning one or more properties.
type Owner struct {
	id        int64
	name      string
	address   *string
	photoURL  *string
	birthday  *time.Time
	email     *string
	phone     *string
	createdAt time.Time
}

// OwnerContact holds the optional contact fields of an owner.
type OwnerContact struct {
	Address *string
	Email   *string
	Phone   *string
}

// NewOwner validates and builds an unsaved owner. Blank contact fields are
// stored as absent.
func NewOwner(name string, contact OwnerContact) (*Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewInvalidInput(CodeInvalidOwnerName, "Owner name is required")
	}
	o := &Owner{name: name, createdAt: time.Now().UTC()}
	o.UpdateContact(contact)
	return o, nil
}

// UpdateContact replaces all contact fields; blank values clear them.
func (o *Owner) UpdateContact(c OwnerContact) {
	o.address = normalizeOptional(c.Address)
	o.email = normalizeOptional(c.Email)
	o.phone = normalizeOptional(c.Phone)
}

func (o *Owner) SetPhoto(url *string) { o.photoURL = normalizeOptional(url) }

func (o *Owner) SetBirthday(d *time.Time) {
	if d == nil {
		o.birthday = nil
		return
	}
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	o.birthday = &day
}

// AssignIdentity records the storage-assigned id on an unsaved owner.
func (o *Owner) AssignIdentity(id int64, createdAt time.Time) {
	if o.id != 0 {
		return
	}
	o.id = id
	if !createdAt.IsZero() {
		o.createdAt = createdAt
	}
}

func (o *Owner) ID() int64 { return o.id }
func (o *Owner) Name() string { return o.name }
func (o *Owner) Address() *string { return copyString(o.address) }
func (o *Owner) PhotoURL() *string { return copyString(o.photoURL) }
func (o *Owner) Email() *string { return copyString(o.email) }
func (o *Owner) Phone() *string { return copyString(o.phone) }
func (o *Owner) CreatedAt() time.Time { return o.createdAt }

func (o *Owner) Birthday() *time.Time {
	if o.birthday == nil {
		return nil
	}
	d := *o.birthday
	return &d
}

// OwnerState is the full field set of a stored owner.
type OwnerState struct {
	ID        int64
	Name      string
	Address   *string
	PhotoURL  *string
	Birthday  *time.Time
	Email     *string
	Phone     *string
	CreatedAt time.Time
}

func RestoreOwner(s OwnerState) *Owner {
	return &Owner{
		id:        s.ID,
		name:      s.Name,
		address:   s.Address,
		photoURL:  s.PhotoURL,
		birthday:  s.Birthday,
		email:     s.Email,
		phone:     s.Phone,
		createdAt: s.CreatedAt,
	}
}

func (o *Owner) State() OwnerState {
	return OwnerState{
		ID:        o.id,
		Name:      o.name,
		Address:   o.Address(),
		PhotoURL:  o.PhotoURL(),
		Birthday:  o.Birthday(),
		Email:     o.Email(),
		Phone:     o.Phone(),
		CreatedAt: o.createdAt,
	}
}
