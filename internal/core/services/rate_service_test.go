package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cocoluventas/sales_backend/internal/apperrors"
	"github.com/cocoluventas/sales_backend/internal/core/domain"
	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/cocoluventas/sales_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindRateByDate(ctx context.Context, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) FindLatestRate(ctx context.Context) (*domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) ListRatesSince(ctx context.Context, from time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockRateRepository) GetRateStats(ctx context.Context, from time.Time) (*domain.RateStats, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateStats), args.Error(1)
}

func (m *MockRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock Scraper ---
type MockScraper struct {
	mock.Mock
}

func (m *MockScraper) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockRateRepository
	mockScraper *MockScraper
	service     portssvc.RateSvcFacade
	today       time.Time
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRateRepository)
	suite.mockScraper = new(MockScraper)
	suite.today = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	suite.service = services.NewRateService(
		suite.mockRepo,
		suite.mockScraper,
		services.WithClock(func() time.Time { return suite.today }),
	)
}

func (suite *RateServiceTestSuite) notFound() error {
	return fmt.Errorf("%w: no rate", apperrors.ErrNotFound)
}

func (suite *RateServiceTestSuite) TestRecordRate_InsertsWhenDateIsFree() {
	ctx := context.Background()
	day := domain.RateDay(suite.today)

	suite.mockRepo.On("FindRateByDate", ctx, day).Return(nil, suite.notFound()).Once()
	suite.mockRepo.On("SaveRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	outcome, err := suite.service.RecordRate(ctx, decimal.RequireFromString("166.58"), suite.today, domain.SourceScrape)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeInserted, outcome)

	saved := suite.mockRepo.Calls[1].Arguments.Get(1).(domain.ExchangeRate)
	suite.Equal(day, saved.RateDate)
	suite.Equal(domain.SourceScrape, saved.Source)
	suite.NotEmpty(saved.RateID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRecordRate_SkipsWhenDateAlreadyHasEntry() {
	ctx := context.Background()
	day := domain.RateDay(suite.today)
	existing := &domain.ExchangeRate{
		RateID:   "existing-id",
		RateDate: day,
		Rate:     decimal.RequireFromString("166.58"),
		Source:   domain.SourceScrape,
	}

	suite.mockRepo.On("FindRateByDate", ctx, day).Return(existing, nil).Once()

	outcome, err := suite.service.RecordRate(ctx, decimal.RequireFromString("170.00"), suite.today, domain.SourceScrape)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeSkipped, outcome)
	// The second value must not overwrite the first: SaveRate never called.
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestRecordRate_RejectsNonPositiveRate() {
	ctx := context.Background()

	_, err := suite.service.RecordRate(ctx, decimal.Zero, suite.today, domain.SourceManual)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestRecordRate_RejectsUnknownSource() {
	ctx := context.Background()

	_, err := suite.service.RecordRate(ctx, decimal.RequireFromString("166.58"), suite.today, domain.RateSource("GUESS"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestCaptureDailyRate_FetchesAndPersists() {
	ctx := context.Background()
	day := domain.RateDay(suite.today)

	suite.mockScraper.On("FetchRate", ctx).Return(decimal.RequireFromString("166.5834"), nil).Once()
	suite.mockRepo.On("FindRateByDate", ctx, day).Return(nil, suite.notFound()).Once()
	suite.mockRepo.On("SaveRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	outcome, err := suite.service.CaptureDailyRate(ctx)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeInserted, outcome)
	suite.mockScraper.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestCaptureDailyRate_PropagatesFetchError() {
	ctx := context.Background()

	suite.mockScraper.On("FetchRate", ctx).Return(decimal.Zero, fmt.Errorf("%w: timeout", apperrors.ErrFetch)).Once()

	_, err := suite.service.CaptureDailyRate(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrFetch)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestListRateHistory_RejectsNonPositiveWindow() {
	_, err := suite.service.ListRateHistory(context.Background(), 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestGetRateStats_UsesTrailingWindow() {
	ctx := context.Background()
	// 7-day window ending today starts 6 days back.
	from := domain.RateDay(suite.today.AddDate(0, 0, -6))
	stats := &domain.RateStats{
		Min:   decimal.RequireFromString("160.00"),
		Max:   decimal.RequireFromString("170.00"),
		Avg:   decimal.RequireFromString("165.00"),
		Count: 7,
	}

	suite.mockRepo.On("GetRateStats", ctx, from).Return(stats, nil).Once()

	got, err := suite.service.GetRateStats(ctx, 7)

	suite.Require().NoError(err)
	suite.Equal(stats, got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
