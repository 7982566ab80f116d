package usecase

import (
	"context"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
	"realestate-backend/pkg/logger"
)

type ListPropertiesUseCase struct {
	repo repository.Repository
}

func NewListPropertiesUseCase(repo repository.Repository) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{repo: repo}
}

// Execute returns one page of matching properties. Page and PageSize are not
// clamped here; values below one are rejected.
func (uc *ListPropertiesUseCase) Execute(ctx context.Context, f model.PropertyFilter) (*model.ListPropertiesResult, error) {
	if f.Page < 1 || f.PageSize < 1 {
		return nil, model.NewInvalidPageParams(f.Page, f.PageSize)
	}

	items, total, err := uc.repo.List(ctx, f)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).
			Str("use_case", "ListProperties").
			Int("page", f.Page).
			Int("page_size", f.PageSize).
			Msg("Repository failed to list properties")
		return nil, err
	}
	if items == nil {
		items = []model.PropertyListItem{}
	}

	return &model.ListPropertiesResult{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: model.TotalPagesFor(total, f.PageSize),
	}, nil
}
