package usecase

import (
	"context"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
	"realestate-backend/pkg/logger"
)

type CreateOwnerUseCase struct {
	repo repository.OwnerRepository
}

func NewCreateOwnerUseCase(repo repository.OwnerRepository) *CreateOwnerUseCase {
	return &CreateOwnerUseCase{repo: repo}
}

func (uc *CreateOwnerUseCase) Execute(ctx context.Context, in model.CreateOwnerInput) (*model.Owner, error) {
	o, err := model.NewOwner(in.Name, model.OwnerContact{
		Address: in.Address,
		Email:   in.Email,
		Phone:   in.Phone,
	})
	if err != nil {
		return nil, err
	}
	o.SetPhoto(in.PhotoURL)
	o.SetBirthday(in.Birthday)

	if err := uc.repo.AddOwner(ctx, o); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("use_case", "CreateOwner").Msg("Repository failed to add owner")
		return nil, err
	}

	logger.FromContext(ctx).Info().Int64("owner_id", o.ID()).Msg("Owner created")
	return o, nil
}

type GetOwnerUseCase struct {
	repo repository.OwnerRepository
}

func NewGetOwnerUseCase(repo repository.OwnerRepository) *GetOwnerUseCase {
	return &GetOwnerUseCase{repo: repo}
}

func (uc *GetOwnerUseCase) Execute(ctx context.Context, id int64) (*model.Owner, error) {
	o, err := uc.repo.GetOwnerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, model.NewOwnerNotFound(id)
	}
	return o, nil
}
