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

// --- Mock RateWriterSvc ---
type MockRateWriter struct {
	mock.Mock
}

func (m *MockRateWriter) RecordRate(ctx context.Context, rate decimal.Decimal, date time.Time, source domain.RateSource) (portssvc.PersistOutcome, error) {
	args := m.Called(ctx, rate, date, source)
	return args.Get(0).(portssvc.PersistOutcome), args.Error(1)
}

func (m *MockRateWriter) CaptureDailyRate(ctx context.Context) (portssvc.PersistOutcome, error) {
	args := m.Called(ctx)
	return args.Get(0).(portssvc.PersistOutcome), args.Error(1)
}

// --- Mock OrderRateCorrector ---
type MockOrderCorrector struct {
	mock.Mock
}

func (m *MockOrderCorrector) RetagAppliedRate(ctx context.Context, stale, corrected decimal.Decimal, updatedBy string) (int64, error) {
	args := m.Called(ctx, stale, corrected, updatedBy)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type MaintenanceServiceTestSuite struct {
	suite.Suite
	mockRates  *MockRateWriter
	mockOrders *MockOrderCorrector
	service    portssvc.MaintenanceSvc
}

func (suite *MaintenanceServiceTestSuite) SetupTest() {
	suite.mockRates = new(MockRateWriter)
	suite.mockOrders = new(MockOrderCorrector)
	suite.service = services.NewMaintenanceService(suite.mockRates, suite.mockOrders)
}

func (suite *MaintenanceServiceTestSuite) TestBackfillRate_WritesManualEntry() {
	ctx := context.Background()
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	rate := dec("165.20")

	suite.mockRates.On("RecordRate", ctx, rate, date, domain.SourceManual).
		Return(portssvc.OutcomeInserted, nil).Once()

	outcome, err := suite.service.BackfillRate(ctx, date, rate)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeInserted, outcome)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *MaintenanceServiceTestSuite) TestBackfillRateRange_TalliesEachDay() {
	ctx := context.Background()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
	rate := dec("165.20")

	suite.mockRates.On("RecordRate", ctx, rate, from, domain.SourceManual).
		Return(portssvc.OutcomeInserted, nil).Once()
	suite.mockRates.On("RecordRate", ctx, rate, from.AddDate(0, 0, 1), domain.SourceManual).
		Return(portssvc.OutcomeSkipped, nil).Once()
	suite.mockRates.On("RecordRate", ctx, rate, to, domain.SourceManual).
		Return(portssvc.PersistOutcome(""), fmt.Errorf("%w: connection reset", apperrors.ErrPersist)).Once()

	tally, err := suite.service.BackfillRateRange(ctx, from, to, rate)

	// A failed day is counted, not fatal.
	suite.Require().NoError(err)
	suite.Equal(1, tally.Inserted)
	suite.Equal(1, tally.Skipped)
	suite.Equal(1, tally.Failed)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *MaintenanceServiceTestSuite) TestBackfillRateRange_RejectsInvertedRange() {
	ctx := context.Background()
	from := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.BackfillRateRange(ctx, from, to, dec("165.20"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRates.AssertNotCalled(suite.T(), "RecordRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MaintenanceServiceTestSuite) TestCorrectOrderRates_RetagsStaleOrders() {
	ctx := context.Background()

	suite.mockOrders.On("RetagAppliedRate", ctx, dec("100"), dec("166.58"), "maintenance").
		Return(int64(14), nil).Once()

	affected, err := suite.service.CorrectOrderRates(ctx, dec("100"), dec("166.58"))

	suite.Require().NoError(err)
	suite.Equal(int64(14), affected)
	suite.mockOrders.AssertExpectations(suite.T())
}

func (suite *MaintenanceServiceTestSuite) TestCorrectOrderRates_RejectsNonPositiveCorrection() {
	_, err := suite.service.CorrectOrderRates(context.Background(), dec("100"), decimal.Zero)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrders.AssertNotCalled(suite.T(), "RetagAppliedRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MaintenanceServiceTestSuite) TestCorrectOrderRates_RejectsNoOpCorrection() {
	_, err := suite.service.CorrectOrderRates(context.Background(), dec("166.58"), dec("166.58"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestMaintenanceService(t *testing.T) {
	suite.Run(t, new(MaintenanceServiceTestSuite))
}
