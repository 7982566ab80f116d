package usecase

import (
	"context"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
	"realestate-backend/pkg/logger"
)

type UpdatePropertyUseCase struct {
	repo repository.Repository
}

func NewUpdatePropertyUseCase(repo repository.Repository) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{repo: repo}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, propertyID int64, in model.UpdatePropertyInput) error {
	ucLogger := logger.FromContext(ctx).With().
		Str("use_case", "UpdateProperty").
		Int64("property_id", propertyID).
		Logger()

	p, err := uc.repo.GetByID(ctx, propertyID, false)
	if err != nil {
		ucLogger.Error().Err(err).Msg("Repository failed to load property")
		return err
	}
	if p == nil {
		return model.NewPropertyNotFound(propertyID)
	}

	if err := p.UpdateBasicInfo(in.BasicInfo()); err != nil {
		return err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		ucLogger.Error().Err(err).Msg("Repository failed to update property")
		return err
	}

	ucLogger.Info().Msg("Property updated")
	return nil
}
