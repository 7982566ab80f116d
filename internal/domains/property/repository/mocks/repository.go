// Package mocks provides testify mocks of the property storage ports.
package mocks

import (
	"context"

	"realestate-backend/internal/domains/property/model"

	"github.com/stretchr/testify/mock"
)

// Store mocks repository.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Add(ctx context.Context, p *model.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *Store) Update(ctx context.Context, p *model.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *Store) GetByID(ctx context.Context, id int64, readOnly bool) (*model.Property, error) {
	args := m.Called(ctx, id, readOnly)
	p, _ := args.Get(0).(*model.Property)
	return p, args.Error(1)
}

func (m *Store) GetByCode(ctx context.Context, code string, readOnly bool) (*model.Property, error) {
	args := m.Called(ctx, code, readOnly)
	p, _ := args.Get(0).(*model.Property)
	return p, args.Error(1)
}

func (m *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *Store) List(ctx context.Context, f model.PropertyFilter) ([]model.PropertyListItem, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.PropertyListItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *Store) AddImage(ctx context.Context, img *model.PropertyImage) error {
	return m.Called(ctx, img).Error(0)
}

func (m *Store) ListImages(ctx context.Context, propertyID int64) ([]*model.PropertyImage, error) {
	args := m.Called(ctx, propertyID)
	images, _ := args.Get(0).([]*model.PropertyImage)
	return images, args.Error(1)
}

func (m *Store) AddTrace(ctx context.Context, tr *model.PropertyTrace) error {
	return m.Called(ctx, tr).Error(0)
}

func (m *Store) ListTraces(ctx context.Context, propertyID int64) ([]*model.PropertyTrace, error) {
	args := m.Called(ctx, propertyID)
	traces, _ := args.Get(0).([]*model.PropertyTrace)
	return traces, args.Error(1)
}

func (m *Store) AddOwner(ctx context.Context, o *model.Owner) error {
	return m.Called(ctx, o).Error(0)
}

func (m *Store) GetOwnerByID(ctx context.Context, id int64) (*model.Owner, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*model.Owner)
	return o, args.Error(1)
}

func (m *Store) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Store) Close() error {
	return m.Called().Error(0)
}
