package usecase

import (
	"context"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
	"realestate-backend/pkg/logger"
)

type CreatePropertyUseCase struct {
	repo repository.Repository
}

func NewCreatePropertyUseCase(repo repository.Repository) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{repo: repo}
}

// Execute validates and stores a new property. The code must be unique
// after trimming.
func (uc *CreatePropertyUseCase) Execute(ctx context.Context, in model.CreatePropertyInput) (*model.Property, error) {
	ucLogger := logger.FromContext(ctx).With().
		Str("use_case", "CreateProperty").
		Str("code", in.Code).
		Int64("owner_id", in.OwnerID).
		Logger()

	p, err := model.NewProperty(in.Code, in.Name, in.Address, in.OwnerID, in.Price)
	if err != nil {
		ucLogger.Warn().Err(err).Msg("Rejected property input")
		return nil, err
	}
	if err := p.UpdateBasicInfo(model.BasicInfo{
		City:      in.City,
		YearBuilt: in.YearBuilt,
		Bedrooms:  in.Bedrooms,
		Bathrooms: in.Bathrooms,
		AreaSqFt:  in.AreaSqFt,
	}); err != nil {
		ucLogger.Warn().Err(err).Msg("Rejected property attributes")
		return nil, err
	}

	exists, err := uc.repo.CodeExists(ctx, p.Code())
	if err != nil {
		ucLogger.Error().Err(err).Msg("Repository failed while checking code")
		return nil, err
	}
	if exists {
		ucLogger.Warn().Msg("Property code already in use")
		return nil, model.NewCodeAlreadyExists(p.Code())
	}

	// A concurrent insert can still win the race; Add reports it as a conflict.
	if err := uc.repo.Add(ctx, p); err != nil {
		ucLogger.Error().Err(err).Msg("Repository failed to add property")
		return nil, err
	}

	ucLogger.Info().Int64("property_id", p.ID()).Msg("Property created")
	return p, nil
}
