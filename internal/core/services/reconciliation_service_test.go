package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/cocoluventas/sales_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrderReader ---
type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderReader) ListOrders(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Test Suite ---
type ReconciliationTestSuite struct {
	suite.Suite
	mockRepo *MockOrderReader
}

func (suite *ReconciliationTestSuite) SetupTest() {
	suite.mockRepo = new(MockOrderReader)
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationTestSuite))
}

func (suite *ReconciliationTestSuite) TestComputeRealizedRevenue_FullCash() {
	svc := services.NewReconciliationService(suite.mockRepo)
	order := domain.Order{
		NominalTotal: dec("100"),
		Payment:      domain.FullCashPayment{},
		AppliedRate:  dec("166.58"),
	}

	suite.True(svc.ComputeRealizedRevenue(order).Equal(dec("100")))
}

func (suite *ReconciliationTestSuite) TestComputeRealizedRevenue_Mixed() {
	svc := services.NewReconciliationService(suite.mockRepo)
	order := domain.Order{
		NominalTotal: dec("30"),
		Payment: domain.MixedPayment{
			BaseAmount:    dec("20"),
			ForeignAmount: dec("1665.8"),
		},
		AppliedRate: dec("166.58"),
	}

	// 20 + 1665.8/166.58 = 30.00
	suite.True(svc.ComputeRealizedRevenue(order).Equal(dec("30")))
}

func (suite *ReconciliationTestSuite) TestComputeRealizedRevenue_MixedWithZeroRateFallsBackToUnity() {
	svc := services.NewReconciliationService(suite.mockRepo)
	order := domain.Order{
		NominalTotal: dec("30"),
		Payment: domain.MixedPayment{
			BaseAmount:    dec("20"),
			ForeignAmount: dec("5"),
		},
		AppliedRate: decimal.Zero,
	}

	// Rate 0 degrades to 1: 20 + 5/1 = 25.
	suite.True(svc.ComputeRealizedRevenue(order).Equal(dec("25")))
}

func (suite *ReconciliationTestSuite) TestComputeRealizedRevenue_InstallmentSimpleForeign() {
	svc := services.NewReconciliationService(suite.mockRepo)
	order := domain.Order{
		NominalTotal: dec("20"),
		Payment: domain.InstallmentPayment{
			InstallmentMode: domain.InstallmentSimple,
			Amount:          dec("3331.6"),
			Method:          domain.MethodForeign,
		},
		AppliedRate: dec("166.58"),
	}

	// 3331.6 / 166.58 = 20.00
	suite.True(svc.ComputeRealizedRevenue(order).Equal(dec("20")))
}

func (suite *ReconciliationTestSuite) TestComputeRealizedRevenue_InstallmentSimpleBase() {
	svc := services.NewReconciliationService(suite.mockRepo)
	order := domain.Order{
		NominalTotal: dec("20"),
		Payment: domain.InstallmentPayment{
			InstallmentMode: domain.InstallmentSimple,
			Amount:          dec("15.50"),
			Method:          domain.MethodBase,
		},
		AppliedRate: dec("166.58"),
	}

	suite.True(svc.ComputeRealizedRevenue(order).Equal(dec("15.50")))
}

func (suite *ReconciliationTestSuite) TestComputeRealizedRevenue_InstallmentMixed() {
	svc := services.NewReconciliationService(suite.mockRepo)
	order := domain.Order{
		NominalTotal: dec("50"),
		Payment: domain.InstallmentPayment{
			InstallmentMode: domain.InstallmentMixed,
			BaseAmount:      dec("10"),
			ForeignAmount:   dec("3331.6"),
		},
		AppliedRate: dec("166.58"),
	}

	// 10 + 3331.6/166.58 = 30.00
	suite.True(svc.ComputeRealizedRevenue(order).Equal(dec("30")))
}

func (suite *ReconciliationTestSuite) TestComputeRealizedRevenue_MissingVariantTreatedAsFullCash() {
	svc := services.NewReconciliationService(suite.mockRepo)
	order := domain.Order{
		NominalTotal: dec("75"),
		AppliedRate:  dec("166.58"),
	}

	suite.True(svc.ComputeRealizedRevenue(order).Equal(dec("75")))
}

func (suite *ReconciliationTestSuite) TestDetectAnomalies_FlagsOverCollection() {
	svc := services.NewReconciliationService(suite.mockRepo)
	orders := []domain.Order{
		{
			OrderID:      "over",
			NominalTotal: dec("50"),
			Payment:      domain.MixedPayment{BaseAmount: dec("60"), ForeignAmount: decimal.Zero},
			AppliedRate:  dec("166.58"),
		},
		{
			OrderID:      "clean",
			NominalTotal: dec("100"),
			Payment:      domain.FullCashPayment{},
			AppliedRate:  dec("166.58"),
		},
	}

	var flagged []domain.Anomaly
	for anomaly := range svc.DetectAnomalies(orders) {
		flagged = append(flagged, anomaly)
	}

	suite.Require().Len(flagged, 1)
	suite.Equal("over", flagged[0].Order.OrderID)
	suite.Contains(flagged[0].Reason, "exceeds nominal total")
}

func (suite *ReconciliationTestSuite) TestDetectAnomalies_EpsilonAbsorbsRoundingNoise() {
	svc := services.NewReconciliationService(suite.mockRepo)
	orders := []domain.Order{
		{
			// Realized 50.01 is exactly nominal+epsilon: not an anomaly.
			OrderID:      "boundary",
			NominalTotal: dec("50"),
			Payment:      domain.MixedPayment{BaseAmount: dec("50.01"), ForeignAmount: decimal.Zero},
			AppliedRate:  dec("166.58"),
		},
		{
			// Realized 50.02 crosses the epsilon.
			OrderID:      "past-boundary",
			NominalTotal: dec("50"),
			Payment:      domain.MixedPayment{BaseAmount: dec("50.02"), ForeignAmount: decimal.Zero},
			AppliedRate:  dec("166.58"),
		},
	}

	var flagged []string
	for anomaly := range svc.DetectAnomalies(orders) {
		flagged = append(flagged, anomaly.Order.OrderID)
	}

	suite.Equal([]string{"past-boundary"}, flagged)
}

func (suite *ReconciliationTestSuite) TestDetectAnomalies_SequenceIsRestartable() {
	svc := services.NewReconciliationService(suite.mockRepo)
	orders := []domain.Order{
		{
			OrderID:      "over",
			NominalTotal: dec("50"),
			Payment:      domain.MixedPayment{BaseAmount: dec("60"), ForeignAmount: decimal.Zero},
			AppliedRate:  dec("166.58"),
		},
	}

	seq := svc.DetectAnomalies(orders)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}

	suite.Equal(1, first)
	suite.Equal(1, second)
}

func (suite *ReconciliationTestSuite) TestDetectAnomalies_StopsWhenConsumerBreaks() {
	svc := services.NewReconciliationService(suite.mockRepo)
	orders := []domain.Order{
		{OrderID: "a", NominalTotal: dec("10"), Payment: domain.MixedPayment{BaseAmount: dec("20"), ForeignAmount: decimal.Zero}, AppliedRate: dec("166.58")},
		{OrderID: "b", NominalTotal: dec("10"), Payment: domain.MixedPayment{BaseAmount: dec("20"), ForeignAmount: decimal.Zero}, AppliedRate: dec("166.58")},
	}

	seen := 0
	for range svc.DetectAnomalies(orders) {
		seen++
		break
	}

	suite.Equal(1, seen)
}

func (suite *ReconciliationTestSuite) TestAggregateRevenue() {
	svc := services.NewReconciliationService(suite.mockRepo)
	orders := []domain.Order{
		{
			NominalTotal: dec("100"),
			Payment:      domain.FullCashPayment{},
			AppliedRate:  dec("166.58"),
		},
		{
			NominalTotal: dec("50"),
			Payment:      domain.MixedPayment{BaseAmount: dec("25"), ForeignAmount: decimal.Zero},
			AppliedRate:  dec("166.58"),
		},
	}

	summary := svc.AggregateRevenue(orders)

	suite.Equal(2, summary.Count)
	suite.True(summary.RealizedTotal.Equal(dec("125")))
	suite.True(summary.NominalTotal.Equal(dec("150")))
	suite.True(summary.CollectionRatio.Equal(dec("0.8333")))
}

func (suite *ReconciliationTestSuite) TestAggregateRevenue_EmptySetHasZeroRatio() {
	svc := services.NewReconciliationService(suite.mockRepo)

	summary := svc.AggregateRevenue(nil)

	suite.Equal(0, summary.Count)
	suite.True(summary.RealizedTotal.IsZero())
	suite.True(summary.NominalTotal.IsZero())
	suite.True(summary.CollectionRatio.IsZero())
}

func (suite *ReconciliationTestSuite) TestRevenueReport_LoadsWindowFromRepository() {
	svc := services.NewReconciliationService(suite.mockRepo)
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{NominalTotal: dec("100"), Payment: domain.FullCashPayment{}, AppliedRate: dec("166.58")},
	}

	suite.mockRepo.On("ListOrders", ctx, from, to).Return(orders, nil).Once()

	summary, err := svc.RevenueReport(ctx, from, to)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Count)
	suite.True(summary.RealizedTotal.Equal(dec("100")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationTestSuite) TestAnomalyReport_EmptyWindowYieldsEmptySlice() {
	svc := services.NewReconciliationService(suite.mockRepo)
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("ListOrders", ctx, from, to).Return([]domain.Order{}, nil).Once()

	anomalies, err := svc.AnomalyReport(ctx, from, to)

	suite.Require().NoError(err)
	suite.NotNil(anomalies)
	suite.Empty(anomalies)
}
