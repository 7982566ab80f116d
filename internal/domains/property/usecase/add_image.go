package usecase

import (
	"context"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
	"realestate-backend/pkg/logger"
)

type AddPropertyImageUseCase struct {
	repo repository.Repository
}

func NewAddPropertyImageUseCase(repo repository.Repository) *AddPropertyImageUseCase {
	return &AddPropertyImageUseCase{repo: repo}
}

// Execute attaches an image to an existing property and returns its id.
func (uc *AddPropertyImageUseCase) Execute(ctx context.Context, propertyID int64, in model.AddImageInput) (int64, error) {
	ucLogger := logger.FromContext(ctx).With().
		Str("use_case", "AddPropertyImage").
		Int64("property_id", propertyID).
		Logger()

	p, err := uc.repo.GetByID(ctx, propertyID, true)
	if err != nil {
		ucLogger.Error().Err(err).Msg("Repository failed to load property")
		return 0, err
	}
	if p == nil {
		return 0, model.NewPropertyNotFound(propertyID)
	}

	img, err := p.AddImage(in.FileURL, in.IsMain, in.Caption, in.SortOrder)
	if err != nil {
		return 0, err
	}
	if err := uc.repo.AddImage(ctx, img); err != nil {
		ucLogger.Error().Err(err).Msg("Repository failed to add image")
		return 0, err
	}

	ucLogger.Info().Int64("image_id", img.ID()).Bool("is_main", img.IsMain()).Msg("Image added")
	return img.ID(), nil
}
