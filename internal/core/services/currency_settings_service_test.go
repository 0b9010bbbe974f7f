package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portsrepo "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/repositories"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencySettingsRepository ---
type MockCurrencySettingsRepository struct {
	mock.Mock
}

func (m *MockCurrencySettingsRepository) GetCurrencySettings(ctx context.Context) (*domain.CurrencySettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencySettings), args.Error(1)
}

func (m *MockCurrencySettingsRepository) SaveCurrencySettings(ctx context.Context, settings domain.CurrencySettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockCurrencySettingsRepository) ListCurrencySettingsHistory(ctx context.Context, limit int, cursor *domain.HistoryCursor) ([]domain.CurrencySettingsChange, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencySettingsChange), args.Error(1)
}

var _ portsrepo.CurrencySettingsRepositoryFacade = (*MockCurrencySettingsRepository)(nil)

func intPtr(i int) *int {
	return &i
}

// --- Test Suite ---
type CurrencySettingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencySettingsRepository
	service  portssvc.CurrencySettingsSvcFacade
}

func (suite *CurrencySettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencySettingsRepository)
	suite.service = services.NewCurrencySettingsService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CurrencySettingsServiceTestSuite) TestGetSettings_NotFoundReturnsDefaults() {
	ctx := context.Background()
	suite.mockRepo.On("GetCurrencySettings", ctx).Return(nil, apperrors.ErrNotFound).Once()

	settings, err := suite.service.GetSettings(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultCurrencySettings(), settings)
	suite.Equal(domain.CurrencyCode("SAR"), settings.DefaultCurrency)
	suite.Equal("ر.س", settings.CurrencySymbol)
	suite.Equal(domain.CurrencyPositionAfter, settings.CurrencyPosition)
	suite.Equal(2, settings.DecimalPlaces)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencySettingsServiceTestSuite) TestGetSettings_Persisted() {
	ctx := context.Background()
	stored := &domain.CurrencySettings{
		DefaultCurrency:  "USD",
		CurrencySymbol:   "$",
		CurrencyPosition: domain.CurrencyPositionBefore,
		DecimalPlaces:    2,
	}
	suite.mockRepo.On("GetCurrencySettings", ctx).Return(stored, nil).Once()

	settings, err := suite.service.GetSettings(ctx)

	suite.Require().NoError(err)
	suite.Equal(*stored, settings)
}

func (suite *CurrencySettingsServiceTestSuite) TestGetSettings_UnsupportedPersistedCurrency() {
	ctx := context.Background()
	suite.mockRepo.On("GetCurrencySettings", ctx).Return(&domain.CurrencySettings{DefaultCurrency: "XXX"}, nil).Once()

	settings, err := suite.service.GetSettings(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultCurrencySettings(), settings)
}

func (suite *CurrencySettingsServiceTestSuite) TestGetSettings_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("GetCurrencySettings", ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetSettings(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *CurrencySettingsServiceTestSuite) TestUpdateSettings_CreatesRow() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.UpdateCurrencySettingsRequest{
		DefaultCurrency:  "usd",
		CurrencySymbol:   " $ ",
		CurrencyPosition: "Before",
		DecimalPlaces:    intPtr(0),
	}

	suite.mockRepo.On("GetCurrencySettings", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrencySettings", ctx, mock.MatchedBy(func(s domain.CurrencySettings) bool {
		return s.DefaultCurrency == "USD" && s.CurrencySymbol == "$" &&
			s.CurrencyPosition == domain.CurrencyPositionBefore && s.DecimalPlaces == 0 &&
			s.CreatedBy == actorID && s.LastUpdatedBy == actorID
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettings(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settings)
	suite.Equal(domain.CurrencyCode("USD"), settings.DefaultCurrency)
	suite.Equal(actorID, settings.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencySettingsServiceTestSuite) TestUpdateSettings_KeepsCreationAudit() {
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.CurrencySettings{
		DefaultCurrency:  "SAR",
		CurrencySymbol:   "ر.س",
		CurrencyPosition: domain.CurrencyPositionAfter,
		DecimalPlaces:    2,
		AuditFields:      domain.AuditFields{CreatedAt: created, CreatedBy: "original-admin"},
	}
	req := dto.UpdateCurrencySettingsRequest{
		DefaultCurrency: "EGP", CurrencySymbol: "ج.م", CurrencyPosition: "after", DecimalPlaces: intPtr(2),
	}

	suite.mockRepo.On("GetCurrencySettings", ctx).Return(existing, nil).Once()
	suite.mockRepo.On("SaveCurrencySettings", ctx, mock.MatchedBy(func(s domain.CurrencySettings) bool {
		return s.CreatedBy == "original-admin" && s.CreatedAt.Equal(created) && s.LastUpdatedBy == "new-admin"
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettings(ctx, req, "new-admin")

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyCode("EGP"), settings.DefaultCurrency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencySettingsServiceTestSuite) TestUpdateSettings_ValidationErrors() {
	ctx := context.Background()
	valid := dto.UpdateCurrencySettingsRequest{
		DefaultCurrency: "USD", CurrencySymbol: "$", CurrencyPosition: "before", DecimalPlaces: intPtr(2),
	}

	tests := []struct {
		name    string
		mutate  func(r *dto.UpdateCurrencySettingsRequest)
		actorID string
	}{
		{name: "missing actor", mutate: func(r *dto.UpdateCurrencySettingsRequest) {}, actorID: ""},
		{name: "unsupported currency", mutate: func(r *dto.UpdateCurrencySettingsRequest) { r.DefaultCurrency = "BTC" }, actorID: "admin"},
		{name: "bad position", mutate: func(r *dto.UpdateCurrencySettingsRequest) { r.CurrencyPosition = "middle" }, actorID: "admin"},
		{name: "missing decimals", mutate: func(r *dto.UpdateCurrencySettingsRequest) { r.DecimalPlaces = nil }, actorID: "admin"},
		{name: "too many decimals", mutate: func(r *dto.UpdateCurrencySettingsRequest) { r.DecimalPlaces = intPtr(9) }, actorID: "admin"},
		{name: "negative decimals", mutate: func(r *dto.UpdateCurrencySettingsRequest) { r.DecimalPlaces = intPtr(-1) }, actorID: "admin"},
		{name: "blank symbol", mutate: func(r *dto.UpdateCurrencySettingsRequest) { r.CurrencySymbol = "  " }, actorID: "admin"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := valid
			tt.mutate(&req)

			settings, err := suite.service.UpdateSettings(ctx, req, tt.actorID)

			suite.Nil(settings)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrencySettings", mock.Anything, mock.Anything)
}

func (suite *CurrencySettingsServiceTestSuite) TestUpdateSettings_SaveError() {
	ctx := context.Background()
	req := dto.UpdateCurrencySettingsRequest{
		DefaultCurrency: "USD", CurrencySymbol: "$", CurrencyPosition: "before", DecimalPlaces: intPtr(2),
	}
	suite.mockRepo.On("GetCurrencySettings", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrencySettings", ctx, mock.AnythingOfType("domain.CurrencySettings")).Return(assert.AnError).Once()

	settings, err := suite.service.UpdateSettings(ctx, req, "admin")

	suite.Nil(settings)
	suite.ErrorIs(err, assert.AnError)
}

func historyChanges(n int, start time.Time) []domain.CurrencySettingsChange {
	changes := make([]domain.CurrencySettingsChange, n)
	for i := range changes {
		changes[i] = domain.CurrencySettingsChange{
			ID:               int64(n - i),
			DefaultCurrency:  "USD",
			CurrencySymbol:   "$",
			CurrencyPosition: domain.CurrencyPositionBefore,
			DecimalPlaces:    2,
			ChangedAt:        start.Add(-time.Duration(i) * time.Minute),
			ChangedBy:        "admin",
		}
	}
	return changes
}

func (suite *CurrencySettingsServiceTestSuite) TestListHistory_LastPage() {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	suite.mockRepo.On("ListCurrencySettingsHistory", ctx, 21, (*domain.HistoryCursor)(nil)).
		Return(historyChanges(3, start), nil).Once()

	resp, err := suite.service.ListHistory(ctx, dto.ListCurrencySettingsHistoryParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Changes, 3)
	suite.Nil(resp.NextToken)
	suite.Equal("USD", resp.Changes[0].DefaultCurrency)
	suite.True(start.Equal(resp.Changes[0].ChangedAt))
}

func (suite *CurrencySettingsServiceTestSuite) TestListHistory_NextTokenContinuesAfterLastRow() {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	page := historyChanges(3, start)
	suite.mockRepo.On("ListCurrencySettingsHistory", ctx, 3, (*domain.HistoryCursor)(nil)).Return(page, nil).Once()

	first, err := suite.service.ListHistory(ctx, dto.ListCurrencySettingsHistoryParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(first.Changes, 2)
	suite.Require().NotNil(first.NextToken)

	suite.mockRepo.On("ListCurrencySettingsHistory", ctx, 3, mock.MatchedBy(func(c *domain.HistoryCursor) bool {
		return c != nil && c.ID == page[1].ID && c.ChangedAt.Equal(page[1].ChangedAt)
	})).Return(page[2:], nil).Once()

	second, err := suite.service.ListHistory(ctx, dto.ListCurrencySettingsHistoryParams{Limit: 2, NextToken: *first.NextToken})

	suite.Require().NoError(err)
	suite.Len(second.Changes, 1)
	suite.Nil(second.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencySettingsServiceTestSuite) TestListHistory_LimitIsCapped() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrencySettingsHistory", ctx, 101, (*domain.HistoryCursor)(nil)).
		Return([]domain.CurrencySettingsChange{}, nil).Once()

	resp, err := suite.service.ListHistory(ctx, dto.ListCurrencySettingsHistoryParams{Limit: 500})

	suite.Require().NoError(err)
	suite.Empty(resp.Changes)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencySettingsServiceTestSuite) TestListHistory_InvalidToken() {
	resp, err := suite.service.ListHistory(context.Background(), dto.ListCurrencySettingsHistoryParams{NextToken: "%%%"})

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListCurrencySettingsHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencySettingsServiceTestSuite) TestListHistory_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrencySettingsHistory", ctx, 21, (*domain.HistoryCursor)(nil)).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListHistory(ctx, dto.ListCurrencySettingsHistoryParams{})

	suite.ErrorIs(err, assert.AnError)
}

func TestCurrencySettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencySettingsServiceTestSuite))
}
