package usecase

import (
	"context"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/repository"
	"realestate-backend/pkg/logger"
)

type ChangePriceUseCase struct {
	repo repository.Repository
}

func NewChangePriceUseCase(repo repository.Repository) *ChangePriceUseCase {
	return &ChangePriceUseCase{repo: repo}
}

// Execute saves the new price, then appends a PRICE_CHANGE trace. The two
// writes are not atomic: if the trace fails the price stays changed and a
// trace-recording error is returned.
func (uc *ChangePriceUseCase) Execute(ctx context.Context, propertyID int64, in model.ChangePriceInput) error {
	ucLogger := logger.FromContext(ctx).With().
		Str("use_case", "ChangePrice").
		Int64("property_id", propertyID).
		Str("new_price", in.NewPrice.String()).
		Logger()

	p, err := uc.repo.GetByID(ctx, propertyID, false)
	if err != nil {
		ucLogger.Error().Err(err).Msg("Repository failed to load property")
		return err
	}
	if p == nil {
		return model.NewPropertyNotFound(propertyID)
	}

	oldPrice := p.Price()
	if err := p.ChangePrice(in.NewPrice); err != nil {
		return err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		ucLogger.Error().Err(err).Msg("Repository failed to save price")
		return err
	}

	trace, err := p.RecordPriceChange()
	if err != nil {
		return err
	}
	if err := uc.repo.AddTrace(ctx, trace); err != nil {
		ucLogger.Error().Err(err).Msg("Price saved but trace was not recorded")
		if model.IsDomainError(err) && model.KindOf(err) != model.KindUnexpected {
			return err
		}
		return model.NewTraceRecordingError(p.ID(), err)
	}

	event := ucLogger.Info().
		Str("old_price", oldPrice.String()).
		Int64("trace_id", trace.ID())
	if in.Notes != nil && *in.Notes != "" {
		event = event.Str("notes", *in.Notes)
	}
	event.Msg("Price changed")
	return nil
}
