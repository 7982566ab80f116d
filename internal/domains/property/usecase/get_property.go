package usecase

import (
	"context"
	"strings"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
)

// GetPropertyUseCase loads a property with its images and traces.
type GetPropertyUseCase struct {
	repo repository.Repository
}

func NewGetPropertyUseCase(repo repository.Repository) *GetPropertyUseCase {
	return &GetPropertyUseCase{repo: repo}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, id int64) (*model.PropertyDetail, error) {
	p, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewPropertyNotFound(id)
	}
	return uc.detail(ctx, p)
}

func (uc *GetPropertyUseCase) ExecuteByCode(ctx context.Context, code string) (*model.PropertyDetail, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, model.NewInvalidInput(model.CodeInvalidCode, "Property code is required")
	}
	p, err := uc.repo.GetByCode(ctx, code, true)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewPropertyNotFound(code)
	}
	return uc.detail(ctx, p)
}

func (uc *GetPropertyUseCase) detail(ctx context.Context, p *model.Property) (*model.PropertyDetail, error) {
	images, err := uc.repo.ListImages(ctx, p.ID())
	if err != nil {
		return nil, err
	}
	traces, err := uc.repo.ListTraces(ctx, p.ID())
	if err != nil {
		return nil, err
	}
	detail := &model.PropertyDetail{
		PropertyListItem: model.ListItemFromProperty(p),
		Images:           make([]model.ImageView, 0, len(images)),
		Traces:           make([]model.TraceView, 0, len(traces)),
	}
	for _, img := range images {
		detail.Images = append(detail.Images, model.ImageViewFrom(img))
	}
	for _, tr := range traces {
		detail.Traces = append(detail.Traces, model.TraceViewFrom(tr))
	}
	return detail, nil
}
