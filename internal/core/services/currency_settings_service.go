package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portsrepo "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/repositories"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/dto"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils/pagination"
)

// maxDecimalPlaces bounds the configurable display precision.
const maxDecimalPlaces = 8

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type currencySettingsService struct {
	BaseService
	repo portsrepo.CurrencySettingsRepositoryFacade
	now  func() time.Time
}

// NewCurrencySettingsService creates the settings service on top of repo.
func NewCurrencySettingsService(repo portsrepo.CurrencySettingsRepositoryFacade) portssvc.CurrencySettingsSvcFacade {
	return &currencySettingsService{repo: repo, now: time.Now}
}

var _ portssvc.CurrencySettingsSvcFacade = (*currencySettingsService)(nil)

// GetSettings never fails on a missing row; defaults are served instead.
func (s *currencySettingsService) GetSettings(ctx context.Context) (domain.CurrencySettings, error) {
	settings, err := s.repo.GetCurrencySettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No currency settings persisted, using defaults")
			return domain.DefaultCurrencySettings(), nil
		}
		s.LogError(ctx, err, "Failed to load currency settings")
		return domain.CurrencySettings{}, fmt.Errorf("failed to load currency settings: %w", err)
	}

	if !settings.DefaultCurrency.IsSupported() {
		s.LogWarn(ctx, "Persisted default currency is not supported, using defaults",
			slog.String("currency", settings.DefaultCurrency.String()))
		return domain.DefaultCurrencySettings(), nil
	}
	return *settings, nil
}

func (s *currencySettingsService) UpdateSettings(ctx context.Context, req dto.UpdateCurrencySettingsRequest, actorID string) (*domain.CurrencySettings, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, apperrors.NewValidationError("an authenticated actor is required to update currency settings")
	}

	code := domain.CurrencyCode(req.DefaultCurrency).Normalize()
	if !code.IsSupported() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("currency %q is not supported", req.DefaultCurrency))
	}
	position := domain.CurrencyPosition(strings.ToLower(strings.TrimSpace(req.CurrencyPosition)))
	if !position.IsValid() {
		return nil, apperrors.NewValidationError("currencyPosition must be 'before' or 'after'")
	}
	if req.DecimalPlaces == nil || *req.DecimalPlaces < 0 || *req.DecimalPlaces > maxDecimalPlaces {
		return nil, apperrors.NewValidationError(fmt.Sprintf("decimalPlaces must be between 0 and %d", maxDecimalPlaces))
	}
	symbol := strings.TrimSpace(req.CurrencySymbol)
	if symbol == "" {
		return nil, apperrors.NewValidationError("currencySymbol is required")
	}

	now := s.now()
	settings := domain.CurrencySettings{
		DefaultCurrency:  code,
		CurrencySymbol:   symbol,
		CurrencyPosition: position,
		DecimalPlaces:    *req.DecimalPlaces,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	existing, err := s.repo.GetCurrencySettings(ctx)
	switch {
	case err == nil:
		settings.CreatedAt = existing.CreatedAt
		settings.CreatedBy = existing.CreatedBy
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to load existing currency settings")
		return nil, fmt.Errorf("failed to load existing currency settings: %w", err)
	}

	if err := s.repo.SaveCurrencySettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save currency settings", slog.String("actor_id", actorID))
		return nil, fmt.Errorf("failed to save currency settings: %w", err)
	}

	s.LogInfo(ctx, "Currency settings updated",
		slog.String("actor_id", actorID),
		slog.String("default_currency", code.String()))
	return &settings, nil
}

// ListHistory returns one page of the settings audit trail, newest first.
func (s *currencySettingsService) ListHistory(ctx context.Context, params dto.ListCurrencySettingsHistoryParams) (*dto.ListCurrencySettingsHistoryResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var cursor *domain.HistoryCursor
	if params.NextToken != "" {
		at, id, err := pagination.DecodeCursor(params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationError("nextToken is invalid")
		}
		cursor = &domain.HistoryCursor{ChangedAt: at, ID: id}
	}

	// One extra row tells us whether another page exists.
	changes, err := s.repo.ListCurrencySettingsHistory(ctx, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currency settings history")
		return nil, fmt.Errorf("failed to list currency settings history: %w", err)
	}

	resp := &dto.ListCurrencySettingsHistoryResponse{}
	if len(changes) > limit {
		changes = changes[:limit]
		last := changes[len(changes)-1]
		token := pagination.EncodeCursor(last.ChangedAt, last.ID)
		resp.NextToken = &token
	}
	resp.Changes = dto.ToCurrencySettingsChangeResponses(changes)
	return resp, nil
}
